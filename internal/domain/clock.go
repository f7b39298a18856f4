package domain

import "time"

// CourtLocation is the wall clock the courts report dates in. Brazil has no
// daylight saving time since 2019.
var CourtLocation = time.FixedZone("BRT", -3*60*60)
