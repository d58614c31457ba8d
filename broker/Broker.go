package broker

import (
	"encoding/json"
	"time"

	"github.com/go-stomp/stomp/v3"
	"github.com/gofiber/fiber/v2/log"
)

var conn *stomp.Conn

// Connect dials the STOMP broker. An empty host leaves the connection nil and
// every send becomes a no-op, so the service runs fine without a broker.
func Connect(network, addr string) {
	if addr == "" {
		log.Info("Message broker not configured, trade events disabled")
		return
	}

	c, err := stomp.Dial(network, addr,
		stomp.ConnOpt.HeartBeat(10*time.Second, 10*time.Second))
	if err != nil {
		log.Warnf("Failed to connect to message broker at %s: %v", addr, err)
		return
	}

	conn = c
	log.Infof("Connected to message broker at %s", addr)
}

func sendReliable(destination string, payload interface{}) error {
	if conn == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return conn.Send("/queue/"+destination, "application/json", body,
		stomp.SendOpt.Receipt)
}
