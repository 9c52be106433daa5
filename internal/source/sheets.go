package source

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mgleavitt/lockquests/internal/models"
	"github.com/mgleavitt/lockquests/pkg/logger"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com"

// SheetsConfig identifies the spreadsheet and range to read.
type SheetsConfig struct {
	BaseURL    string // override for tests; defaults to the public API host
	SheetID    string
	APIKey     string
	SheetRange string // e.g. "Master List!A:Z"
	Timeout    time.Duration
}

// SheetsSource reads the room table from the Google Sheets values API.
// The sheet is treated as an opaque read-only collaborator; any response
// that lacks a values array is ErrNoData.
type SheetsSource struct {
	cfg    SheetsConfig
	client *resty.Client
	log    *zap.Logger
}

// valueRange mirrors the subset of the values API response we consume.
type valueRange struct {
	Values [][]string `json:"values"`
}

// NewSheetsSource builds a sheets-backed table source.
func NewSheetsSource(cfg SheetsConfig) *SheetsSource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultSheetsBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &SheetsSource{
		cfg:    cfg,
		client: client,
		log:    logger.WithModule("sheets"),
	}
}

// Fetch retrieves the configured range and splits off the header row.
func (s *SheetsSource) Fetch(ctx context.Context) (*models.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	path := fmt.Sprintf("/v4/spreadsheets/%s/values/%s",
		url.PathEscape(s.cfg.SheetID),
		url.PathEscape(s.cfg.SheetRange),
	)

	var result valueRange
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.cfg.APIKey).
		SetResult(&result).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("sheets fetch: %w", err)
	}
	if resp.IsError() {
		s.log.Warn("sheets API returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("sheet_id", s.cfg.SheetID),
		)
		return nil, fmt.Errorf("sheets fetch: unexpected status %d", resp.StatusCode())
	}

	return splitTable(result.Values)
}
