package repository

import "github.com/mtamaki/cloud-cost-viewer/internal/shared/types"

// ConfigRepository loads the optional configuration file.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
}
