package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <file.class>",
		Short: "Print only the constant pool of a .class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("jclass.pool")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read class file: %w", err)
			}

			cf, err := classfile.Parse(data)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			log.Infof("constant pool of %s has %d slots", cf.Name, cf.Pool.Size())

			fmt.Print(cf.Pool.String())
			return nil
		},
	}
}
