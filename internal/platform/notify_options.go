package platform

// AppName is reported to the notification service as the sending
// application.
const AppName = "MyEditor"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image shown next to the text.
	IconPath string
	// Timeout is how long the notification stays visible, in milliseconds.
	// Zero uses the default of five seconds.
	Timeout int32
}

func (o Options) timeout() int32 {
	if o.Timeout <= 0 {
		return 5000
	}
	return o.Timeout
}
