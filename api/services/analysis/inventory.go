package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/surfyhou/Dota2Analyzer/api/dto"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

const (
	inventoryCheckpointSeconds = 60
	inventoryCapacity          = 9
	itemImageBaseURL           = "https://cdn.opendota.com"
)

// Consumables and recipe intermediates are noise in a build timeline.
var skippedItemPrefixes = []string{"recipe", "ward_", "smoke", "dust", "tpscroll"}

// BuildInventoryTimeline reconstructs the player's inventory at one minute
// checkpoints from the purchase log. Without a log it falls back to a single
// snapshot of the final item slots.
func (s *AnalysisService) BuildInventoryTimeline(player *opendota.PlayerDetail, durationSeconds int) []dto.InventorySnapshot {
	if len(player.PurchaseLog) == 0 {
		return s.finalSlotsSnapshot(player, durationSeconds)
	}

	purchases := append([]opendota.PurchaseLogEntry{}, player.PurchaseLog...)
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].Time < purchases[j].Time
	})

	var checkpoints []int
	for t := 0; t < durationSeconds; t += inventoryCheckpointSeconds {
		checkpoints = append(checkpoints, t)
	}
	checkpoints = append(checkpoints, durationSeconds)

	var timeline []dto.InventorySnapshot
	var held []string
	next := 0
	for _, checkpoint := range checkpoints {
		for next < len(purchases) && purchases[next].Time <= checkpoint {
			held = s.applyPurchase(held, purchases[next].Key)
			next++
		}
		timeline = append(timeline, dto.InventorySnapshot{
			Time:  checkpoint,
			Items: s.describeItems(held),
		})
	}
	return timeline
}

// applyPurchase folds one purchase into the held item keys. Buying a composed
// item consumes its components, and the inventory is capped at nine entries
// with the oldest evicted first.
func (s *AnalysisService) applyPurchase(held []string, rawKey string) []string {
	key := normalizeItemKey(rawKey)
	if key == "" || isSkippedItem(key) {
		return held
	}

	if item, ok := s.catalog.ItemByKey(key); ok {
		for _, component := range item.Components {
			componentKey := normalizeItemKey(component)
			if componentKey == "" || strings.HasPrefix(componentKey, "recipe") {
				continue
			}
			held = removeItemKey(held, componentKey)
		}
	}

	if containsItemKey(held, key) {
		return held
	}
	held = append(held, key)
	if len(held) > inventoryCapacity {
		held = held[1:]
	}
	return held
}

// finalSlotsSnapshot builds a single end-of-match snapshot from the item
// slots, for matches without a purchase log.
func (s *AnalysisService) finalSlotsSnapshot(player *opendota.PlayerDetail, durationSeconds int) []dto.InventorySnapshot {
	slots := []int{
		player.Item0, player.Item1, player.Item2,
		player.Item3, player.Item4, player.Item5,
		player.Backpack0, player.Backpack1, player.Backpack2,
		player.ItemNeutral,
	}

	var keys []string
	for _, itemID := range slots {
		if itemID <= 0 {
			continue
		}
		key, ok := s.catalog.ItemKeyByID(itemID)
		if !ok {
			key = fmt.Sprintf("item_%d", itemID)
		}
		if containsItemKey(keys, key) {
			continue
		}
		keys = append(keys, key)
	}

	return []dto.InventorySnapshot{{
		Time:  durationSeconds,
		Items: s.describeItems(keys),
	}}
}

// describeItems resolves held keys into display entries via the catalog.
func (s *AnalysisService) describeItems(keys []string) []dto.InventoryItem {
	items := make([]dto.InventoryItem, 0, len(keys))
	for _, key := range keys {
		entry := dto.InventoryItem{Key: key, Name: formatItemName(key)}
		if item, ok := s.catalog.ItemByKey(key); ok {
			if item.DisplayName != "" {
				entry.Name = item.DisplayName
			}
			if item.Img != "" {
				entry.Image = itemImageBaseURL + item.Img
			}
		}
		items = append(items, entry)
	}
	return items
}

func normalizeItemKey(rawKey string) string {
	key := strings.ToLower(strings.TrimSpace(rawKey))
	return strings.TrimPrefix(key, "item_")
}

func isSkippedItem(key string) bool {
	for _, prefix := range skippedItemPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func containsItemKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func removeItemKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

// formatItemName title-cases an item key for display when the catalog has no
// entry for it.
func formatItemName(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
