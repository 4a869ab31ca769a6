package views

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
)

func createTestViewport() viewport.Model {
	return viewport.New(60, 10)
}

func createTestSpinner() spinner.Model {
	return spinner.New()
}
