// Package platform sends desktop notifications through the host OS.
package platform

import "time"

// DefaultAppName identifies photomark to the notification service.
const DefaultAppName = "photomark"

// DefaultTimeout is how long a notification stays visible where the
// platform lets us choose.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName overrides DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image shown with the
	// notification if the platform supports it.
	IconPath string
	// Timeout overrides DefaultTimeout.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
