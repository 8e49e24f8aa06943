// Package cache holds the read-side cache of busy reservation windows per
// equipment. Writers invalidate whole equipment entries after commit.
package cache

import (
	"context"
	"strconv"
)

type BusySlots interface {
	// Get decodes the cached value for window into dst and reports a hit.
	Get(ctx context.Context, equipmentID int64, window string, dst any) (bool, error)
	Set(ctx context.Context, equipmentID int64, window string, value any) error
	Invalidate(ctx context.Context, equipmentIDs ...int64) error
}

const keyPrefix = "equiptrack:busy:"

func key(equipmentID int64) string {
	return keyPrefix + strconv.FormatInt(equipmentID, 10)
}

// Nop never hits. Used when no redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, int64, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, int64, string, any) error         { return nil }
func (Nop) Invalidate(context.Context, ...int64) error            { return nil }
