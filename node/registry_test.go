package node

import (
	"testing"

	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
)

func TestRegisterAndLookupHandler(t *testing.T) {
	name := "TestRegistryMessageFoo"
	called := false
	RegisterHandler(name, func(n *Node, c *connState, any *lichtenstein.Any) error {
		called = true
		return nil
	})

	h, ok := lookupHandler(name)
	if !ok {
		t.Fatal("lookupHandler did not find registered handler")
	}
	if err := h(nil, nil, nil); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !called {
		t.Fatal("handler was not invoked")
	}
}

func TestRegisterHandlerDuplicatePanics(t *testing.T) {
	name := "TestRegistryMessageBar"
	RegisterHandler(name, func(n *Node, c *connState, any *lichtenstein.Any) error { return nil })

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterHandler(name, func(n *Node, c *connState, any *lichtenstein.Any) error { return nil })
}

func TestLookupHandlerMissing(t *testing.T) {
	_, ok := lookupHandler("TestRegistryMessageDoesNotExist")
	if ok {
		t.Fatal("expected lookup miss for unregistered message name")
	}
}
