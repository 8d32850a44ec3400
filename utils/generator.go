package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const meetingRoomPrefix = "luna-mistica"

// GenerateMeetingLink returns the video-room URL for a session. Rooms
// are created lazily by the meeting provider on first join, so a fresh
// random name is all a booking needs.
func GenerateMeetingLink() string {
	room := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("https://meet.jit.si/%s-%s", meetingRoomPrefix, room)
}
