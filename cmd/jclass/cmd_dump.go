package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newDumpCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "dump <file.class>",
		Short: "Parse a .class file and print its full structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("jclass.dump")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read class file: %w", err)
			}
			log.Infof("read %d bytes from %s", len(data), args[0])

			start := time.Now()
			cf, err := classfile.Parse(data)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			log.Infof("parsed %s in %s", cf.Name, time.Since(start))

			fmt.Print(cf.String())
			if pretty {
				printPretty(cf)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "render fields and methods with Java-like types")

	return cmd
}

func printPretty(cf *classfile.ClassFile) {
	fmt.Println("declarations:")
	for i := range cf.Fields {
		field := &cf.Fields[i]
		if ft, err := field.Type(); err == nil {
			fmt.Printf("  %s %s %s\n", field.Flags, ft, field.Name)
		}
	}
	for i := range cf.Methods {
		method := &cf.Methods[i]
		if md, err := method.Signature(); err == nil {
			fmt.Printf("  %s %s%s\n", method.Flags, method.Name, md)
		}
	}
}
