package common

const (
	// UserConfigDirectory is the dirname of the directory holding the user
	// configuration for the demo runner.
	UserConfigDirectory = ".slist"

	// DefaultConfigFile is the name of the config file looked up inside
	// UserConfigDirectory when no path is given.
	DefaultConfigFile = "config.toml"

	// DefaultPause is the pause between two demos.
	DefaultPause = "1s"

	// DefaultWorkers is the number of goroutines a concurrency demo spawns.
	DefaultWorkers = 10

	// DefaultLogLevel is the logrus level used when none is configured.
	DefaultLogLevel = "info"
)
