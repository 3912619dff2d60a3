package mqtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchTopic(t *testing.T) {
	testCases := []struct {
		topic   string
		pattern string
		match   bool
	}{
		{"romi/abc/meta", "+/+/meta", true},
		{"romi/abc/cmd", "+/+/meta", false},
		{"romi/abc", "+/+/meta", false},
		{"romi/abc/meta/x", "+/+/meta", false},
		{"romi/abc/meta", "romi/#", true},
		{"romi", "romi/#", true},
		{"other/abc", "romi/#", false},
		{"romi/abc/msg", "romi/abc/msg", true},
		{"romi/abc/msg", "#", true},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.match, MatchTopic(tc.topic, tc.pattern), "%s ~ %s", tc.topic, tc.pattern)
	}
}

func TestClientOptionsFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		broker   string
		prefix   string
		user     string
		password string
		clientID string
	}{
		{"mqtt://localhost:1883/robo/", "tcp://localhost:1883", "robo/", "", "", ""},
		{"mqtt://localhost:1883/robo", "tcp://localhost:1883", "robo/", "", "", ""},
		{"mqtts://u:p@broker:8883", "ssl://broker:8883", "", "u", "p", ""},
		{"ws://broker:9001/a/b?client-id=romi1", "ws://broker:9001", "a/b/", "", "", "romi1"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			opts, prefix, err := ClientOptionsFromURL(tc.url)
			require.NoError(t, err)
			require.Len(t, opts.Servers, 1)
			require.Equal(t, tc.broker, opts.Servers[0].String())
			require.Equal(t, tc.prefix, prefix)
			require.Equal(t, tc.user, opts.Username)
			require.Equal(t, tc.password, opts.Password)
			require.Equal(t, tc.clientID, opts.ClientID)
		})
	}

	_, _, err := ClientOptionsFromURL("mqtt://%zz")
	require.Error(t, err)
}

func TestQueueDeliver(t *testing.T) {
	q := &Queue{subs: make(map[string][]*Subscription)}
	var got []string
	record := func(name string) Handler {
		return func(topic string, payload []byte) {
			got = append(got, name+":"+topic+":"+string(payload))
		}
	}
	q.subs["romi/1/msg"] = []*Subscription{{topic: "romi/1/msg", handler: record("exact")}}
	q.subs["+/+/msg"] = []*Subscription{{topic: "+/+/msg", handler: record("wildcard")}}
	q.subs["romi/2/msg"] = []*Subscription{{topic: "romi/2/msg", handler: record("other")}}

	q.deliver("romi/1/msg", []byte("x"))
	require.ElementsMatch(t, []string{"exact:romi/1/msg:x", "wildcard:romi/1/msg:x"}, got)
}

func TestParseMeta(t *testing.T) {
	info, ok := parseMeta("romi/abc/meta", []byte(`{"description":"Romi"}`))
	require.True(t, ok)
	require.Equal(t, "romi/abc", info.Ref.String())
	require.Equal(t, "Romi", info.Meta.Description)

	_, ok = parseMeta("romi/abc/meta", nil)
	require.False(t, ok, "offline")
	_, ok = parseMeta("romi/meta", []byte(`{}`))
	require.False(t, ok)
}
