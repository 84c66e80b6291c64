package main

import (
	"github.com/stellarlinkco/capeval/internal/llm"
	"github.com/stellarlinkco/capeval/internal/store"
)

var (
	defaultProviderFromConfig = llm.DefaultProviderFromConfig
	openStore                 = store.Open
)
