//go:build wireinject

package main

import (
	"github.com/google/wire"
)

func BuildEnv(args Args) (*Env, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		wire.Struct(new(Env), "*"),
	)
	return nil, nil
}
