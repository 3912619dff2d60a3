package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/astar.go/pkg/cli/sh"
	"github.com/robotalks/astar.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/astar.go/pkg/l1/msgs"

	_ "github.com/robotalks/astar.go/pkg/romi/msgs"
)

var (
	mqttURL    = "mqtt://localhost:1883/robo/"
	topic      = "#"
	outputJSON bool
)

func init() {
	if val := os.Getenv("ROBO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&topic, "topic", topic, "Topic filter under the prefix, e.g. romi/+/msg.")
	flag.BoolVar(&outputJSON, "json-msg", outputJSON, "Print messages in JSON.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()

	q.Sub(topic, func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/"+mqtt.TopicMeta) {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%08x) %v", topic, typed.TypeId, err)
			return
		}
		log.Printf("%s: #%d %s", topic, typed.Sequence, sh.FormatMsg(msg, outputJSON))
	})
	select {}
}
