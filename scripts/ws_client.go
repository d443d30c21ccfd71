// Package main runs a demo WebSocket client that watches solve progress
// for one instance on a running observation endpoint.
package main

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/gorilla/websocket"

	"github.com/kevincorizi/PoliTO-CoIoTe/internal/progress"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: ws_client <instance> [host:port]")
	}
	instance := os.Args[1]
	host := "localhost:9100"
	if len(os.Args) > 2 {
		host = os.Args[2]
	}

	u := url.URL{Scheme: "ws", Host: host, Path: "/v1/progress/ws", RawQuery: "instance=" + url.QueryEscape(instance)}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = c.Close() }()

	for {
		var evt progress.Event
		if err := c.ReadJSON(&evt); err != nil {
			log.Printf("read: %v", err)
			return
		}
		switch evt.Type {
		case "best":
			fmt.Printf("attempt %d: new best cost %d\n", evt.Attempt, evt.Cost)
		case "recovered":
			fmt.Printf("recovered: cost %d\n", evt.Cost)
		case "done":
			fmt.Printf("done: cost %d in %.3fs\n", evt.Cost, evt.ElapsedMs/1000)
			return
		default:
			fmt.Printf("attempt %d: cost %d\n", evt.Attempt, evt.Cost)
		}
	}
}
