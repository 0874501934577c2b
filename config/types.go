package config

// ServerConfig contains the HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSConfig locates the static schedule feed on disk
type GTFSConfig struct {
	Dir        string `yaml:"dir" validate:"required"`
	AccessFile string `yaml:"accessFile"`
}

// RealtimeConfig contains the GTFS-Realtime feed configuration
type RealtimeConfig struct {
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	RefreshIntervalMS   int    `yaml:"refreshIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
}

// DeparturesConfig tunes the departure listing defaults
type DeparturesConfig struct {
	DefaultWindowMinutes int `yaml:"defaultWindowMinutes" validate:"gte=0"`
	MaxWindowMinutes     int `yaml:"maxWindowMinutes" validate:"gte=0"`
}

// CommentsConfig contains the station comment store configuration
type CommentsConfig struct {
	File       string `yaml:"file"`
	MaxPerLine int    `yaml:"maxPerLine" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	GTFS       GTFSConfig       `yaml:"gtfs" validate:"required"`
	Realtime   RealtimeConfig   `yaml:"realtime"`
	Departures DeparturesConfig `yaml:"departures"`
	Comments   CommentsConfig   `yaml:"comments"`
}
