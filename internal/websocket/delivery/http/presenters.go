package http

import (
	"strconv"

	"builders-panel/internal/websocket"

	gws "github.com/gorilla/websocket"
)

type WSConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	AllowedOrigins  []string
}

type upgradeReq struct {
	UserID string `form:"user_id"`
}

func (r upgradeReq) validate() error {
	id, err := strconv.ParseInt(r.UserID, 10, 64)
	if err != nil || id <= 0 {
		return websocket.ErrInvalidUserID
	}
	return nil
}

func (r upgradeReq) toInput(conn *gws.Conn) websocket.ConnectionInput {
	return websocket.ConnectionInput{
		UserID: r.UserID,
		Conn:   conn,
	}
}

type statsResp struct {
	ActiveConnections int `json:"active_connections"`
	TotalUniqueUsers  int `json:"total_unique_users"`
	Dropped           int `json:"dropped"`
}

func newStatsResp(s websocket.HubStats) statsResp {
	return statsResp{
		ActiveConnections: s.ActiveConnections,
		TotalUniqueUsers:  s.TotalUniqueUsers,
		Dropped:           s.Dropped,
	}
}
