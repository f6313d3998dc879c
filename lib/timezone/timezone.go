package timezone

import (
	"time"
	// embed zoneinfo, the scraper often runs in containers without tzdata
	_ "time/tzdata"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
}

// Now returns the current time in the catalog's zone, so collection
// timestamps come out the same no matter where the scraper runs.
func Now() time.Time {
	return time.Now().In(Location)
}
