package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/dudafacio/rsvp-api/internal/models"
)

// Notifier announces RSVP activity. Failures are the caller's to log, never
// to surface: a missed announcement must not fail the RSVP itself.
type Notifier interface {
	NotifyRSVP(guest models.Guest) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyRSVP(guest models.Guest) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	var status string
	switch guest.RSVPStatus {
	case models.RSVPYes:
		status = "confirmed ✅"
	case models.RSVPNo:
		status = "declined ❌"
	default:
		status = "is still deciding 🤔"
	}

	noteStr := ""
	if guest.Note != "" {
		noteStr = fmt.Sprintf("\n**Note:** %s", guest.Note)
	}

	message := fmt.Sprintf("🎓 **RSVP Update**\n**Guest:** %s\n**Status:** %s\n**Companions:** %d%s",
		guest.Name,
		status,
		len(guest.Companions),
		noteStr,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
