package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/plan-systems/klog"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	var cfg DriverConfig
	err := newRootCmd(fset, &cfg).ExecuteContext(ctx)
	stop()

	if err != nil {
		klog.Errorf("%v", err)
	}
	klog.Flush()

	if err != nil {
		os.Exit(1)
	}
}
