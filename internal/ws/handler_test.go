package ws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spinroom/internal/engine"
	"spinroom/internal/types"
)

func TestToCommand(t *testing.T) {
	locks := []bool{true, false, true, false, false}

	cases := []struct {
		name    string
		msg     types.ClientMessage
		want    engine.Command
		wantOK  bool
	}{
		{
			name:   "spin",
			msg:    types.ClientMessage{Type: "spin", Room: "ABC123"},
			want:   engine.Command{Type: engine.CmdSpin, Player: "c1"},
			wantOK: true,
		},
		{
			name:   "update_locks",
			msg:    types.ClientMessage{Type: "update_locks", Room: "ABC123", Locks: locks},
			want:   engine.Command{Type: engine.CmdSetLocks, Player: "c1", Locks: locks},
			wantOK: true,
		},
		{
			name:   "finish",
			msg:    types.ClientMessage{Type: "finish", Room: "ABC123"},
			want:   engine.Command{Type: engine.CmdFinish, Player: "c1"},
			wantOK: true,
		},
		{
			name:   "join is not a game command",
			msg:    types.ClientMessage{Type: "join", Room: "ABC123", Name: "Alice"},
			wantOK: false,
		},
		{
			name:   "unknown type",
			msg:    types.ClientMessage{Type: "teleport"},
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := toCommand(tc.msg, "c1")
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.want, cmd)
			}
		})
	}
}
