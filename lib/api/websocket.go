package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

const writeTimeout = 10 * time.Second

// wsClient serialises writes to one connection; gorilla connections allow a
// single concurrent writer.
type wsClient struct {
	writeMutex sync.Mutex
}

// @Summary	Open websocket for realtime status information
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		status
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade already replied to the client
		log("couldn't make websocket: %s", err)
		return
	}

	a.wsMutex.Lock()
	a.wsClients[ws] = &wsClient{}
	a.Stats.SetWsClients(len(a.wsClients))
	a.wsMutex.Unlock()

	done := make(chan struct{})
	go a.websocketWriter(ws, done)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		log("Received: %s", msg)
	}

	close(done)
	a.dropClient(ws)
}

func (a *Api) dropClient(ws *websocket.Conn) {
	a.wsMutex.Lock()
	defer a.wsMutex.Unlock()
	if _, ok := a.wsClients[ws]; !ok {
		return
	}
	delete(a.wsClients, ws)
	a.Stats.SetWsClients(len(a.wsClients))
	err := ws.Close()
	if err != nil {
		log("could not close websocket: %s", err)
	}
}

func (a *Api) websocketWriter(ws *websocket.Conn, done <-chan struct{}) {
	pingTicker := time.NewTicker(2 * time.Second)
	defer pingTicker.Stop()

	if !a.send(ws, a.Stats.Snapshot()) {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-pingTicker.C:
			if !a.send(ws, a.Stats.Snapshot()) {
				return
			}
		}
	}
}

// broadcast sends an event to every connected websocket client.
func (a *Api) broadcast(data interface{}) {
	a.wsMutex.Lock()
	clients := make([]*websocket.Conn, 0, len(a.wsClients))
	for ws := range a.wsClients {
		clients = append(clients, ws)
	}
	a.wsMutex.Unlock()

	for _, ws := range clients {
		a.send(ws, data)
	}
}

// send writes one JSON message to ws. Only that connection's writer is
// held during the write.
func (a *Api) send(ws *websocket.Conn, data interface{}) bool {
	packet, err := json.Marshal(data)
	if err != nil {
		log("could not encode websocket message: %s", err)
		return false
	}

	a.wsMutex.Lock()
	client, ok := a.wsClients[ws]
	a.wsMutex.Unlock()
	if !ok {
		return false
	}

	client.writeMutex.Lock()
	defer client.writeMutex.Unlock()
	err = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err != nil {
		log("could not set write deadline: %s", err)
		return false
	}
	err = ws.WriteMessage(websocket.TextMessage, packet)
	if err != nil {
		log("could not write to websocket: %s", err)
		return false
	}
	return true
}
