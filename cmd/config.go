package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PickupReleasePercent  int
	ProgressDeadlineHours int
	SubscriberQueueDepth  int
	DeadlineSweepSpec     string

	HaulerRoster        []string
	HaulerFlatFee       int64
	HaulerAvgDistanceKm float64
}
