package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dhruv-477/SGPA-calculator/config"
	"github.com/Dhruv-477/SGPA-calculator/internal/console"
	"github.com/Dhruv-477/SGPA-calculator/internal/selftest"
	applogger "github.com/Dhruv-477/SGPA-calculator/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	exportPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "sgpa",
		Short:         "SGPA & CGPA calculator",
		Long:          "Interactive SGPA & CGPA calculator. Run `sgpa test` for the built-in self-test.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (yaml)")
	root.PersistentFlags().StringVar(&opts.exportPath, "export", "", "write an Excel summary to this .xlsx path on exit")

	root.AddCommand(&cobra.Command{
		Use:     "test",
		Aliases: []string{"selftest"},
		Short:   "Run the built-in calculation and validation checks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := selftest.Run(cmd.OutOrStdout())
			if !report.Passed() {
				return fmt.Errorf("self-test failed")
			}
			return nil
		},
	})

	return root
}

func runConsole(cmd *cobra.Command, opts *rootOptions) error {
	// 1. 加载配置
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return err
	}
	if opts.exportPath != "" {
		cfg.Export.Path = opts.exportPath
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return err
		}
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		return err
	}
	defer logger.Sync()
	logger = applogger.WithSession(logger)

	logger.Debug("应用启动中...",
		zap.String("log_level", cfg.Log.Level),
		zap.String("export_path", cfg.Export.Path),
	)

	// 3. 监听系统信号，Ctrl+C 时取消等待中的输入并以非零状态退出
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. 运行交互界面
	if err := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, logger).Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("会话被中断")
			fmt.Fprintln(os.Stderr, "Interrupted.")
			return err
		}
		logger.Error("会话异常结束", zap.Error(err))
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		return err
	}

	logger.Debug("会话结束")
	return nil
}
