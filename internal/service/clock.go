package service

import "time"

// nowFunc is swapped in tests that pin timestamps.
var nowFunc = time.Now
