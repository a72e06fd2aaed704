package catalog

import (
	"context"
	"runtime"
	"time"

	"github.com/agbru/domainflow/internal/usecase"
)

// Build information, set at link time with -ldflags "-X".
var (
	BuildVersion = "dev"
	BuildCommit  = "none"
	BuildDate    = "unknown"
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Version reports build information. It takes no request.
type Version struct{}

// Execute returns the build information.
func (Version) Execute() VersionInfo {
	return VersionInfo{
		Version:   BuildVersion,
		Commit:    BuildCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ClockResponse is produced by Clock.
type ClockResponse struct {
	Time time.Time `json:"time" yaml:"time"`
	Unix int64     `json:"unix" yaml:"unix"`
}

// Clock reports the current UTC time. Its entry point takes only a context.
type Clock struct {
	Now func() time.Time
}

var _ usecase.Command[ClockResponse] = Clock{}

// Execute returns the current time.
func (c Clock) Execute(ctx context.Context) (ClockResponse, error) {
	if err := ctx.Err(); err != nil {
		return ClockResponse{}, err
	}
	now := c.Now().UTC()
	return ClockResponse{Time: now, Unix: now.Unix()}, nil
}
