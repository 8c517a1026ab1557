//go:build js && wasm

package main

import (
	"github.com/prefeitura-rio/app-cadastro/internal/client"
	"github.com/prefeitura-rio/app-cadastro/internal/dom"
	"go.uber.org/zap"
)

func main() {
	// Development encoding reads better in the browser console
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	page, err := dom.LookupPage()
	if err != nil {
		logger.Fatal("registration page not found", zap.Error(err))
	}

	submit := client.NewSubmitHandler(client.SubmitDeps{
		BaseURL: dom.Origin(),
		Result:  dom.NewTextNode(page.Result),
		Logger:  logger,
	})
	back := client.NewBackHandler(dom.Location{})

	dom.BindSubmit(page.Form, submit, logger)
	dom.BindBack(page.Back, back)

	logger.Info("registration form bound", zap.String("endpoint", submit.Endpoint()))

	// Listeners live as long as the page
	select {}
}
