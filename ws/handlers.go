package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS meng-upgrade koneksi HTTP menjadi WebSocket untuk papan antrian.
func ServeWS(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		client := &Client{Conn: conn, Send: make(chan []byte, 256)}
		hub.Register <- client

		go client.writePump()
		go client.readPump(hub)
		return nil
	}
}

// BroadcastStatusKunjungan mengirim perubahan status kunjungan ke papan antrian.
func BroadcastStatusKunjungan(idKunjungan, nomorAntrian int, status string) {
	payload, err := json.Marshal(map[string]interface{}{
		"id_kunjungan":  idKunjungan,
		"nomor_antrian": nomorAntrian,
		"status":        status,
	})
	if err != nil {
		return
	}
	HubInstance.Broadcast <- payload
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.Unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
		// Papan antrian hanya menerima broadcast; pesan masuk diabaikan.
	}
}

func (c *Client) writePump() {
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
	c.Conn.Close()
}
