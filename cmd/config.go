package main

import (
	"errors"
	"time"

	"mask_monitor/internal/inference"
	"mask_monitor/internal/service"

	"github.com/spf13/viper"
)

const (
	storageMemory = "memory"
	storageSQLite = "sqlite"
)

type appConfig struct {
	Port        string
	LogLevel    string
	LogFormat   string
	MaxUploadMB int
	StaticDir   string

	StorageDriver string
	SQLitePath    string

	RecentLimit  int
	MuteDuration time.Duration

	Model          inference.ONNXConfig
	MaxImagePixels int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.recent_limit", service.DefaultRecentLimit)
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("static.dir", "static")

	v.SetDefault("storage.driver", storageMemory)
	v.SetDefault("storage.sqlite_path", ":memory:")

	v.SetDefault("mute.duration", service.DefaultMuteDuration)

	v.SetDefault("model.path", "models/mask_detector.onnx")
	v.SetDefault("model.library_path", "")
	v.SetDefault("model.input_size", inference.DefaultInputSize)
	v.SetDefault("model.classes", inference.DefaultClasses)
	v.SetDefault("model.conf_threshold", inference.DefaultConfThreshold)
	v.SetDefault("model.iou_threshold", inference.DefaultIOUThreshold)
	v.SetDefault("model.max_detections", inference.DefaultMaxDetections)
	v.SetDefault("model.sessions", inference.DefaultPoolSize)
	v.SetDefault("model.channel_order", inference.ChannelOrderRGB)
	v.SetDefault("model.acquire_timeout", inference.DefaultAcquireTimeout)
	v.SetDefault("model.max_image_pixels", inference.DefaultMaxImagePixels)
}

// loadConfig reads <dir>/config.yml over the defaults. A missing file is
// not an error; MODEL_PATH overrides model.path.
func loadConfig(v *viper.Viper, dir string) error {
	setDefaults(v)
	if err := v.BindEnv("model.path", "MODEL_PATH"); err != nil {
		return err
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func readAppConfig(v *viper.Viper) appConfig {
	return appConfig{
		Port:          v.GetString("port"),
		LogLevel:      v.GetString("log.level"),
		LogFormat:     v.GetString("log.format"),
		MaxUploadMB:   v.GetInt("server.max_upload_mb"),
		StaticDir:     v.GetString("static.dir"),
		StorageDriver: v.GetString("storage.driver"),
		SQLitePath:    v.GetString("storage.sqlite_path"),
		RecentLimit:   v.GetInt("log.recent_limit"),
		MuteDuration:  v.GetDuration("mute.duration"),

		MaxImagePixels: v.GetInt64("model.max_image_pixels"),
		Model: inference.ONNXConfig{
			ModelPath:      v.GetString("model.path"),
			LibraryPath:    v.GetString("model.library_path"),
			InputSize:      v.GetInt("model.input_size"),
			Classes:        v.GetStringSlice("model.classes"),
			ConfThreshold:  float32(v.GetFloat64("model.conf_threshold")),
			IOUThreshold:   float32(v.GetFloat64("model.iou_threshold")),
			MaxDetections:  v.GetInt("model.max_detections"),
			Sessions:       v.GetInt("model.sessions"),
			AcquireTimeout: v.GetDuration("model.acquire_timeout"),
			ChannelOrder:   v.GetString("model.channel_order"),
		},
	}
}
