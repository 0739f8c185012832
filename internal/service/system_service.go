package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Stock-Portfolio-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService. features lists optional
// functionality and whether it is enabled in this deployment.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// GetVersionInfo reports the application version, the applied schema version and enabled features.
func (s *SystemService) GetVersionInfo() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	features := make(map[string]bool, len(s.features))
	for name, enabled := range s.features {
		features[name] = enabled
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(dbVersion, 10),
		Features:   features,
	}, nil
}
