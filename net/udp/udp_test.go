// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package udp_test

import (
	"net"
	"testing"
	"time"

	"github.com/tarmio/framing"
	"github.com/tarmio/framing/net/udp"
)

func TestEndpoint_SendReceive(t *testing.T) {
	server, err := udp.Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer server.Close()

	received := make(chan *framing.Message, 1)
	go func() {
		_ = server.Serve(func(msg *framing.Message, from *net.UDPAddr, err error) {
			if err == nil {
				received <- msg
			}
		})
	}()

	client, err := udp.Dial(server.LocalAddr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	if err := client.Send([]byte("datagram payload")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case msg := <-received:
		if string(msg.Payload()) != "datagram payload" {
			t.Fatalf("payload = %q", msg.Payload())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for datagram")
	}
}
