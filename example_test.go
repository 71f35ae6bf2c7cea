package glossa_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/glossa"
	"github.com/aretw0/glossa/pkg/adapters/memory"
)

// ExampleNew_memory demonstrates how to compile a project held in memory.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNew_memory() {
	loader := memory.NewLoader(map[string]string{
		"skills/smalltalk/domain.json":          `{"name": "smalltalk"}`,
		"skills/smalltalk/greeting/skill.json":  `{"name": "greeting"}`,
		"skills/smalltalk/greeting/nlu/en.json": `{"actions": {"hello": {"type": "dialog", "utterance_samples": ["Hi {there|}"], "answers": ["Hello %user%!"], "variables": {"user": "friend"}}}}`,
	})

	trainer, err := glossa.New("", glossa.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	records, err := trainer.Compile(context.Background(), "en")
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range records {
		fmt.Println(r.Kind, r.Intent, r.Text+r.Domain)
	}
	// Output:
	// domain greeting.hello smalltalk
	// document greeting.hello Hi there
	// document greeting.hello Hi
	// answer greeting.hello Hello friend!
}

// ExampleTrainer_Expand shows the order alternatives are produced in.
func ExampleTrainer_Expand() {
	trainer, err := glossa.New("", glossa.WithLoader(memory.NewLoader(nil)))
	if err != nil {
		log.Fatal(err)
	}

	alternatives, _ := trainer.Expand("{Turn|Switch} the light {on|off}")
	for _, alt := range alternatives {
		fmt.Println(alt)
	}
	// Output:
	// Turn the light on
	// Turn the light off
	// Switch the light on
	// Switch the light off
}
