package relay

import (
	"fmt"
	"strconv"
	"strings"
)

const channelPrefix = "panel:user:"

// UserChannelPattern matches every per-user panel channel.
const UserChannelPattern = channelPrefix + "*"

// UserChannel is the pub/sub channel carrying the events of one user: panel:user:{id}.
func UserChannel(userID int64) string {
	return channelPrefix + strconv.FormatInt(userID, 10)
}

// ParseUserChannel extracts the user id from a channel built by UserChannel.
func ParseUserChannel(channel string) (int64, error) {
	rest, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}
	return id, nil
}

// Subject is the NATS subject of an event: {prefix}.user.{id}.{kind}.
func Subject(prefix string, userID int64, kind Kind) string {
	return fmt.Sprintf("%s.user.%d.%s", prefix, userID, strings.ToLower(string(kind)))
}
