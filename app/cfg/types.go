package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	SourcesDir        string
	PublicDir         string
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Outbound mail configuration
	SMTPHost string
	SMTPPort string
	SMTPFrom string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
