package opendota

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/surfyhou/Dota2Analyzer/fetcher/requests"
)

// Client is the public interface of the OpenDota gateway.
// The analysis pipeline only ever talks to the provider through it.
type Client interface {
	GetRecentMatches(ctx context.Context, accountID int64, limit int) ([]RecentMatch, error)
	GetPlayerMatches(ctx context.Context, accountID int64, limit int, offset int, lobbyType int) ([]RecentMatch, error)
	GetMatchDetail(ctx context.Context, matchID int64) (*MatchDetail, error)
	GetHeroes(ctx context.Context) ([]Hero, error)
	GetHeroStats(ctx context.Context) ([]HeroStats, error)
	GetItemConstants(ctx context.Context) (map[string]ItemConstants, error)
	GetHeroBenchmarks(ctx context.Context, heroID int) (*BenchmarksResponse, error)
	RequestParse(ctx context.Context, matchID int64) (bool, error)
}

// The OpenDota client with its base URL.
type client struct {
	baseURL string
}

// NewClient creates an instance of the OpenDota client.
func NewClient(baseURL string) Client {
	return &client{baseURL: baseURL}
}

// GetHeroes returns the full hero catalog.
func (c *client) GetHeroes(ctx context.Context) ([]Hero, error) {
	var heroes []Hero
	if err := c.getJSON(ctx, fmt.Sprintf("%s/heroes", c.baseURL), &heroes); err != nil {
		return nil, err
	}
	return heroes, nil
}

// GetHeroStats returns the aggregate hero statistics.
func (c *client) GetHeroStats(ctx context.Context) ([]HeroStats, error) {
	var stats []HeroStats
	if err := c.getJSON(ctx, fmt.Sprintf("%s/heroStats", c.baseURL), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetRecentMatches returns the newest ranked matches of the account.
func (c *client) GetRecentMatches(ctx context.Context, accountID int64, limit int) ([]RecentMatch, error) {
	url := fmt.Sprintf("%s/players/%d/recentMatches?limit=%d&lobby_type=7", c.baseURL, accountID, limit)
	var matches []RecentMatch
	if err := c.getJSON(ctx, url, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// GetPlayerMatches is the pagination primitive over the account match history.
func (c *client) GetPlayerMatches(ctx context.Context, accountID int64, limit int, offset int, lobbyType int) ([]RecentMatch, error) {
	url := fmt.Sprintf("%s/players/%d/matches?limit=%d&offset=%d&lobby_type=%d",
		c.baseURL, accountID, limit, offset, lobbyType)
	var matches []RecentMatch
	if err := c.getJSON(ctx, url, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// GetMatchDetail returns the parsed match payload, or an empty player list
// when the provider has not parsed the replay yet.
func (c *client) GetMatchDetail(ctx context.Context, matchID int64) (*MatchDetail, error) {
	var detail MatchDetail
	if err := c.getJSON(ctx, fmt.Sprintf("%s/matches/%d", c.baseURL, matchID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetItemConstants returns the item metadata keyed by item key.
func (c *client) GetItemConstants(ctx context.Context) (map[string]ItemConstants, error) {
	var items map[string]ItemConstants
	if err := c.getJSON(ctx, fmt.Sprintf("%s/constants/items", c.baseURL), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetHeroBenchmarks returns the percentile curves for the hero.
func (c *client) GetHeroBenchmarks(ctx context.Context, heroID int) (*BenchmarksResponse, error) {
	var benchmarks BenchmarksResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/benchmarks?hero_id=%d", c.baseURL, heroID), &benchmarks); err != nil {
		return nil, err
	}
	return &benchmarks, nil
}

// RequestParse asks the provider to parse the replay.
// Fire and forget: a success flag only, no parsed data comes back.
func (c *client) RequestParse(ctx context.Context, matchID int64) (bool, error) {
	url := fmt.Sprintf("%s/request/%d", c.baseURL, matchID)
	resp, err := requests.Request(ctx, url, http.MethodPost)
	if err != nil {
		return false, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("API returned status code %d", resp.StatusCode)
	}
	return true, nil
}

// getJSON runs a GET request and decodes the body into out.
func (c *client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := requests.Request(ctx, url, http.MethodGet)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	// Check the status code.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}
