package sh

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
	"github.com/robotalks/astar.go/pkg/l1/msgs"
)

// FormatMsg formats a message as "Name {fields}" or JSON.
// CommandOK is simply OK in text.
func FormatMsg(msg fx.Message, asJSON bool) string {
	if _, ok := msg.(*msgs.CommandOK); ok && !asJSON {
		return "OK"
	}
	s, ok := msg.(msgs.SerializableMessage)
	if !ok {
		return fmt.Sprintf("%#v", msg)
	}
	if asJSON {
		out, err := json.Marshal(s.Serializable())
		if err != nil {
			return err.Error()
		}
		return string(out)
	}
	name := reflect.Indirect(reflect.ValueOf(msg)).Type().Name()
	return name + " {" + s.Serializable().String() + "}"
}

// FormatInfo formats ControllerInfo as "TYPE/ID: description [k=v ...]".
func FormatInfo(info l1.ControllerInfo) string {
	var sb strings.Builder
	sb.WriteString(info.Ref.String())
	if info.Meta.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(info.Meta.Description)
	}
	if len(info.Meta.Labels) > 0 {
		labels := make([]string, 0, len(info.Meta.Labels))
		for k, v := range info.Meta.Labels {
			labels = append(labels, k+"="+v)
		}
		sort.Strings(labels)
		sb.WriteString(" [" + strings.Join(labels, " ") + "]")
	}
	return sb.String()
}
