package services

import "github.com/dmitrijs2005/foodlink/internal/client/client"

// Services bundles the API services around one shared Cache.
type Services struct {
	Donations DonationService
	Requests  RequestService
	Stats     StatsService
	Cache     *Cache
}

func New(c client.Client) *Services {
	cache := NewCache()
	return &Services{
		Donations: NewDonationService(c, cache),
		Requests:  NewRequestService(c, cache),
		Stats:     NewStatsService(c, cache),
		Cache:     cache,
	}
}
