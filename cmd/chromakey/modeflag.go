package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/davesmith10/chromakey/internal/chromakey"
)

const modeFlagType = "mode"

// modeFlag is a pflag.Value that only accepts chroma-key mode names.
type modeFlag struct {
	mode chromakey.Mode
}

func (f *modeFlag) String() string {
	if !f.mode.Valid() {
		return ""
	}
	return f.mode.String()
}

func (f *modeFlag) Set(s string) error {
	m, err := chromakey.ParseMode(s)
	if err != nil {
		return err
	}
	f.mode = m
	return nil
}

func (f *modeFlag) Type() string {
	return modeFlagType
}

func modeVar(fs *pflag.FlagSet, name, usage string) {
	fs.Var(&modeFlag{}, name, usage)
}

func getMode(fs *pflag.FlagSet, name string) (chromakey.Mode, error) {
	flag := fs.Lookup(name)
	if flag == nil {
		return 0, fmt.Errorf("flag accessed but not defined: %s", name)
	}
	val, ok := flag.Value.(*modeFlag)
	if !ok {
		return 0, fmt.Errorf("flag %s is not of type %s", name, modeFlagType)
	}
	if !val.mode.Valid() {
		return 0, fmt.Errorf("%w: --%s is required", chromakey.ErrInvalidMode, name)
	}
	return val.mode, nil
}
