package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

const availableDatesTTL = 5 * time.Minute

func availableDatesKey(providerProfileID uint, year, month int) string {
	return fmt.Sprintf("provider:%d:available-dates:%d-%02d", providerProfileID, year, month)
}

// GetAvailableDates returns the cached month listing, or nil on miss.
// Cache errors are treated as misses; the resolver recomputes.
func GetAvailableDates(providerProfileID uint, year, month int) []string {
	if Client == nil {
		return nil
	}
	raw, err := Client.Get(Ctx, availableDatesKey(providerProfileID, year, month)).Bytes()
	if err != nil {
		return nil
	}
	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil
	}
	return dates
}

func SetAvailableDates(providerProfileID uint, year, month int, dates []string) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}
	Client.Set(Ctx, availableDatesKey(providerProfileID, year, month), raw, availableDatesTTL)
}

// InvalidateProvider drops every cached month for a provider. Called on
// schedule edits, override edits and bookings.
func InvalidateProvider(providerProfileID uint) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("provider:%d:available-dates:*", providerProfileID)
	iter := Client.Scan(Ctx, 0, pattern, 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
