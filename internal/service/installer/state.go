package installer

// Settings is what the wizard writes to .env. Field tags match the
// variables read by the config package.
type Settings struct {
	Region  string `env:"AWS_REGION"`
	ModelID string `env:"BEDROCK_MODEL_ID"`

	ServerURL string `env:"MEMORY_SERVER_URL"`
	OrgID     string `env:"ORG_ID"`
	ProjectID string `env:"PROJECT_ID"`
	UserID    string `env:"USER_ID"`

	EnableTelegram bool   `env:"ENABLE_TELEGRAM"`
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramOwner  int64  `env:"TELEGRAM_OWNER_ID"`
}

type InstallState struct {
	Settings Settings
	// Memory and Telegram only drive which steps are asked.
	Memory   bool
	Telegram bool
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
