package consent

// Event is what the banner runtime reports on consent and on change: the
// categories the visitor currently accepts.
type Event struct {
	Categories []Category `json:"categories"`
}

// Accepted reports whether cat is among the accepted categories.
func (e Event) Accepted(cat Category) bool {
	for _, c := range e.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// State is a consent mode value.
type State string

const (
	Granted State = "granted"
	Denied  State = "denied"
)

// Signal is the consent mode update sent to the analytics tag.
type Signal struct {
	AnalyticsStorage  State `json:"analytics_storage"`
	AdStorage         State `json:"ad_storage"`
	AdUserData        State `json:"ad_user_data"`
	AdPersonalization State `json:"ad_personalization"`
}

// SignalFunc delivers a consent mode update. A nil SignalFunc means the
// analytics tag is not present.
type SignalFunc func(Signal)

// SignalFor maps an event to a consent mode update. All four fields follow
// the analytics category.
func SignalFor(e Event) Signal {
	s := Denied
	if e.Accepted(Analytics) {
		s = Granted
	}
	return Signal{
		AnalyticsStorage:  s,
		AdStorage:         s,
		AdUserData:        s,
		AdPersonalization: s,
	}
}

// OnConsent runs when the visitor first makes a choice.
func (c *Config) OnConsent(e Event) {
	c.update(e)
}

// OnChange runs when the visitor changes an earlier choice.
func (c *Config) OnChange(e Event) {
	c.update(e)
}

func (c *Config) update(e Event) {
	if c.Signal == nil {
		return
	}
	c.Signal(SignalFor(e))
}
