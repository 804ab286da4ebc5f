package model

// Settings is the read-only configuration singleton consulted once per worker
// cycle: which channels are enabled and where broadcast chat/email messages go
// when no subscription rows are involved.
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // master switch for the whole pipeline
	PushEnabled          bool   `json:"push_enabled"`
	WhatsAppEnabled      bool   `json:"whatsapp_enabled"`
	EmailEnabled         bool   `json:"email_enabled"`
	AdminPhone           string `json:"admin_phone"` // broadcast chat target
	AdminEmail           string `json:"admin_email"` // broadcast email target
}

// ChannelEnabled reports whether the given delivery channel is switched on.
func (s Settings) ChannelEnabled(channel string) bool {
	switch channel {
	case ChannelPush:
		return s.PushEnabled
	case ChannelWhatsApp:
		return s.WhatsAppEnabled
	case ChannelEmail:
		return s.EmailEnabled
	default:
		return false
	}
}
