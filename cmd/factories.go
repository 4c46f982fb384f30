package cmd

import (
	"agentview/adapters/api"
	"agentview/adapters/stream"
	"agentview/application"
	"agentview/viewport"
)

// Container holds the wired application dependencies
type Container struct {
	API       *api.Client
	Dialer    *stream.Dialer
	Directory *application.Directory
}

// NewContainer wires the adapters and the directory controller for the given
// CLI configuration
func NewContainer(cli *CLI, defaultEndpoint string) *Container {
	if defaultEndpoint == "" {
		defaultEndpoint = viewport.DefaultEndpoint
	}
	client := api.NewClient(cli.API)
	dialer := stream.NewDialer(cli.API)
	return &Container{
		API:       client,
		Dialer:    dialer,
		Directory: application.NewDirectory(client, dialer, defaultEndpoint),
	}
}
