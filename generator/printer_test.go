package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protox-go/protox/generator"
)

func TestPrinterIndentation(t *testing.T) {
	p := &generator.Printer{}
	p.P("package foo")
	p.P("func bar() {")
	p.In()
	p.P("return")
	p.Out()
	p.P("}")

	want := "package foo\nfunc bar() {\n\treturn\n}\n"
	assert.Equal(t, want, p.String())
}

func TestPrinterOutNeverGoesNegative(t *testing.T) {
	p := &generator.Printer{}
	p.Out()
	p.P("x")
	assert.Equal(t, "x\n", p.String())
}
