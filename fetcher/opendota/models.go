package opendota

// Return types from the OpenDota API. Only the fields the analysis pipeline
// consumes are mapped; unknown fields are ignored by the decoder.

// RecentMatch is one entry of a player's match list.
type RecentMatch struct {
	MatchID     int64 `json:"match_id"`
	PlayerSlot  int   `json:"player_slot"`
	RadiantWin  bool  `json:"radiant_win"`
	Duration    int   `json:"duration"`
	StartTime   int   `json:"start_time"`
	HeroID      int   `json:"hero_id"`
	Kills       int   `json:"kills"`
	Deaths      int   `json:"deaths"`
	Assists     int   `json:"assists"`
	LastHits    int   `json:"last_hits"`
	Denies      int   `json:"denies"`
	GoldPerMin  int   `json:"gold_per_min"`
	XpPerMin    int   `json:"xp_per_min"`
	HeroDamage  int   `json:"hero_damage"`
	TowerDamage int   `json:"tower_damage"`
	HeroHealing int   `json:"hero_healing"`
	Level       int   `json:"level"`
}

// IsRadiant tells which side the player was on. Slots 0-127 are radiant.
func (m *RecentMatch) IsRadiant() bool {
	return m.PlayerSlot < 128
}

// Won reports whether the player's side won the match.
func (m *RecentMatch) Won() bool {
	return m.IsRadiant() == m.RadiantWin
}

// MatchDetail is the full parsed match payload.
// Players is empty until the provider has parsed the replay.
type MatchDetail struct {
	MatchID    int64          `json:"match_id"`
	Duration   int            `json:"duration"`
	RadiantWin bool           `json:"radiant_win"`
	PicksBans  []PickBan      `json:"picks_bans"`
	Players    []PlayerDetail `json:"players"`
}

// PickBan is a single hero selection phase entry.
type PickBan struct {
	IsPick bool `json:"is_pick"`
	HeroID int  `json:"hero_id"`
	Team   int  `json:"team"`
	Order  int  `json:"order"`
}

// PlayerDetail is the per-player box score plus the optional parsed extras.
// The time series slices are indexed by minute and nil for unparsed matches.
type PlayerDetail struct {
	AccountID   *int64             `json:"account_id"`
	PlayerSlot  int                `json:"player_slot"`
	HeroID      int                `json:"hero_id"`
	Kills       int                `json:"kills"`
	Deaths      int                `json:"deaths"`
	Assists     int                `json:"assists"`
	LastHits    int                `json:"last_hits"`
	Denies      int                `json:"denies"`
	GoldPerMin  int                `json:"gold_per_min"`
	XpPerMin    int                `json:"xp_per_min"`
	Level       int                `json:"level"`
	Lane        int                `json:"lane"`
	LaneRole    *int               `json:"lane_role"`
	HeroDamage  int                `json:"hero_damage"`
	TowerDamage int                `json:"tower_damage"`
	Item0       int                `json:"item_0"`
	Item1       int                `json:"item_1"`
	Item2       int                `json:"item_2"`
	Item3       int                `json:"item_3"`
	Item4       int                `json:"item_4"`
	Item5       int                `json:"item_5"`
	Backpack0   int                `json:"backpack_0"`
	Backpack1   int                `json:"backpack_1"`
	Backpack2   int                `json:"backpack_2"`
	ItemNeutral int                `json:"item_neutral"`
	GoldT       []int              `json:"gold_t"`
	LastHitsT   []int              `json:"lh_t"`
	DeniesT     []int              `json:"dn_t"`
	XpT         []int              `json:"xp_t"`
	PurchaseLog []PurchaseLogEntry `json:"purchase_log"`
	KillsLog    []KillLogEntry     `json:"kills_log"`
}

// IsRadiant tells which side the player was on.
func (p *PlayerDetail) IsRadiant() bool {
	return p.PlayerSlot < 128
}

// PurchaseLogEntry is one item purchase with its match time in seconds.
type PurchaseLogEntry struct {
	Time int    `json:"time"`
	Key  string `json:"key"`
}

// KillLogEntry records a kill with the victim unit key.
type KillLogEntry struct {
	Time int    `json:"time"`
	Key  string `json:"key"`
}

// Hero is the catalog entry with the canonical key and display name.
type Hero struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name"`
}

// HeroStats carries the pro pick/win counts used for win rates.
type HeroStats struct {
	ID      int `json:"id"`
	ProWin  int `json:"pro_win"`
	ProPick int `json:"pro_pick"`
}

// ItemConstants is the per-item metadata from the constants endpoint.
// Components lists the sub-item keys a composed item is built from.
type ItemConstants struct {
	ID          *int     `json:"id"`
	Img         string   `json:"img"`
	DisplayName string   `json:"dname"`
	Cost        *int     `json:"cost"`
	Quality     string   `json:"qual"`
	Components  []string `json:"components"`
}

// BenchmarkEntry is one (percentile, value) point of a metric curve.
type BenchmarkEntry struct {
	Percentile float64 `json:"percentile"`
	Value      float64 `json:"value"`
}

// BenchmarksResponse maps metric names to their percentile curves for a hero.
type BenchmarksResponse struct {
	HeroID int                         `json:"hero_id"`
	Result map[string][]BenchmarkEntry `json:"result"`
}
