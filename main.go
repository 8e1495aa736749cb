package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/purgehub/purgehub/internal/cache"
	"github.com/purgehub/purgehub/internal/config"
	"github.com/purgehub/purgehub/internal/logging"
	"github.com/purgehub/purgehub/internal/objectcache"
	"github.com/purgehub/purgehub/internal/purge"
	"github.com/purgehub/purgehub/internal/server"
	"github.com/purgehub/purgehub/internal/server/routes"
	"github.com/purgehub/purgehub/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
	purgeAll    bool
	purgeURL    string
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["features"] = cfg.Features()
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 启动顺序：配置 → 页面缓存执行器 → 对象缓存 → PurgeService → Fiber server，
	// CLI 一次性模式与 HTTP 服务共享同一个 PurgeService。
	svc, closeObjects := buildPurgeService(cfg, logger)
	defer closeObjects()

	if opts.purgeAll || opts.purgeURL != "" {
		return runOneShot(opts, svc)
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["listen_port"] = cfg.Global.ListenPort
	fields["features"] = cfg.Features()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(cfg, svc, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

func buildPurgeService(cfg *config.Config, logger *logrus.Logger) (*server.PurgeService, func()) {
	executor := purge.NewExecutor(cfg.Global.CachePath, cache.NewFSDeleter(nil), logger)

	var objects objectcache.Flusher
	closeFn := func() {}
	if client := objectcache.NewClient(cfg.ObjectCache); client != nil {
		objects = objectcache.NewRedisFlusher(client, cfg.ObjectCache.Prefix)
		closeFn = func() { _ = client.Close() }
	}

	return server.NewPurgeService(executor, objects, cfg.Global.PurgeTimeout.DurationValue(), logger), closeFn
}

// runOneShot 执行 --purge-all/--purge-url 后退出，失败返回 1。
func runOneShot(opts cliOptions, svc *server.PurgeService) int {
	var (
		outcome server.Outcome
		err     error
	)
	if opts.purgeAll {
		outcome = svc.Manual(context.Background(), server.ManualAll)
	} else {
		outcome, err = svc.PurgeURL(context.Background(), opts.purgeURL)
	}
	if err != nil {
		fmt.Fprintf(stdErr, "清理失败: %v\n", err)
		return 1
	}
	if !outcome.Success {
		fmt.Fprintf(stdErr, "清理失败: scope=%s target=%s\n", outcome.Scope, outcome.Target)
		return 1
	}
	if outcome.Skipped {
		fmt.Fprintln(stdOut, "页面缓存未配置，已跳过")
		return 0
	}
	fmt.Fprintf(stdOut, "已清理 scope=%s target=%s\n", outcome.Scope, outcome.Target)
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("purgehub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
		purgeAll   bool
		purgeURL   string
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 PURGEHUB_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")
	fs.BoolVar(&purgeAll, "purge-all", false, "清空页面缓存与对象缓存后退出")
	fs.StringVar(&purgeURL, "purge-url", "", "清理单个 URL 的页面缓存后退出")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}
	if purgeAll && purgeURL != "" {
		return cliOptions{}, fmt.Errorf("--purge-all 与 --purge-url 不能同时使用")
	}

	path := os.Getenv("PURGEHUB_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
		purgeAll:    purgeAll,
		purgeURL:    purgeURL,
	}, nil
}

func startHTTPServer(cfg *config.Config, svc *server.PurgeService, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		ListenPort: port,
	})
	if err != nil {
		return err
	}
	routes.RegisterStatusRoutes(app, svc)
	routes.RegisterPurgeRoutes(app, svc, cfg.Global.PurgeToken, logger)
	server.RegisterFallback(app, logger)

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}

// printVersion 输出注入的版本 + 提交信息。
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}
