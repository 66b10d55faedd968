package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesClients(t *testing.T) {
	h := NewHub(nil)
	a := h.register(4)
	b := h.register(4)

	h.Broadcast([]byte("x"))
	require.Equal(t, []byte("x"), <-a.send)
	require.Equal(t, []byte("x"), <-b.send)
	require.Equal(t, 2, h.ClientCount())
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := NewHub(nil)
	slow := h.register(1)
	fast := h.register(4)

	h.Broadcast([]byte("1"))
	h.Broadcast([]byte("2"))

	require.Equal(t, 1, h.ClientCount())
	require.Len(t, fast.send, 2)

	// канал медленного клиента закрыт после первого сообщения
	<-slow.send
	_, ok := <-slow.send
	require.False(t, ok)
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	h := NewHub(nil)
	c := h.register(1)
	h.unregister(c)
	require.NotPanics(t, func() { h.unregister(c) })
	require.Zero(t, h.ClientCount())
}

func TestHub_CloseDisconnectsEveryone(t *testing.T) {
	h := NewHub(nil)
	c := h.register(1)
	h.Close()

	_, ok := <-c.send
	require.False(t, ok)

	late := h.register(1)
	_, ok = <-late.send
	require.False(t, ok)
	require.Zero(t, h.ClientCount())
}

func TestHub_BroadcastJSON(t *testing.T) {
	h := NewHub(nil)
	c := h.register(1)
	require.NoError(t, h.BroadcastJSON(map[string]int{"zone": 2}))
	require.JSONEq(t, `{"zone":2}`, string(<-c.send))
}
