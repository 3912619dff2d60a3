package msgs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedRoundTrip(t *testing.T) {
	typed, err := TypedFrom(NewCommandErr(errors.New("bus failure")))
	require.NoError(t, err)
	typed.Sequence = 7
	require.True(t, typed.IsCommand())
	require.True(t, typed.IsReply())
	require.False(t, typed.IsEvent())

	data, err := typed.Encode()
	require.NoError(t, err)
	decoded, err := DecodeTyped(data)
	require.NoError(t, err)
	require.Equal(t, CommandErrTypeID, decoded.TypeId)
	require.Equal(t, uint32(7), decoded.Sequence)

	msg, err := decoded.Decode()
	require.NoError(t, err)
	require.EqualError(t, msg.(*CommandErr), "bus failure")
}

func TestTypedKinds(t *testing.T) {
	testCases := []struct {
		typeID  uint32
		command bool
		reply   bool
		group   uint32
	}{
		{CommandOKTypeID, true, true, GroupCommand},
		{GroupRomi | 0x0001, true, false, GroupRomi},
		{GroupRomi | TypeIDMaskReply | 0x0010, true, true, GroupRomi},
		{GroupRomi | TypeIDKindEvent | 0x0010, false, false, GroupRomi},
	}
	for _, tc := range testCases {
		typed := &Typed{TypeId: tc.typeID}
		require.Equal(t, tc.command, typed.IsCommand(), "%08x", tc.typeID)
		require.Equal(t, !tc.command, typed.IsEvent(), "%08x", tc.typeID)
		require.Equal(t, tc.reply, typed.IsReply(), "%08x", tc.typeID)
		require.Equal(t, tc.group, typed.Group(), "%08x", tc.typeID)
	}
}

func TestTypedErrors(t *testing.T) {
	_, err := TypedFrom(nil)
	require.ErrorIs(t, err, ErrNotSerializable)

	_, err = (&Typed{TypeId: 0x12345678}).Decode()
	var unknown *ErrUnknownType
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, uint32(0x12345678), unknown.TypeID)

	_, err = DecodeTyped([]byte{0xff})
	require.Error(t, err)
}
