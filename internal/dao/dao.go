// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/haierkeys/voice-note-service/internal/model"
	"github.com/haierkeys/voice-note-service/pkg/fileurl"
	"github.com/haierkeys/voice-note-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	sqlitecgo "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite | sqlite-cgo | mysql | postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径，":memory:" 为内存库
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机，host:port
	Host string `yaml:"host"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时）
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// Replicas 只读副本 DSN，与主库同类型
	Replicas []string `yaml:"replicas"`
	// Tracing 是否为 SQL 语句创建 opentracing span
	Tracing bool `yaml:"tracing" default:"true"`
	// RunMode debug 模式下输出 SQL 日志
	RunMode string `yaml:"-"`
}

type Dao struct {
	Db     *gorm.DB
	ctx    context.Context
	config *DatabaseConfig
	logger *zap.Logger
}

// Option Dao 配置项
type Option func(*Dao)

func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) { d.config = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) { d.logger = l }
}

func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{Db: db, ctx: ctx, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 返回绑定了 ctx 的会话
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = d.ctx
	}
	return d.Db.WithContext(ctx)
}

// Transaction 在事务中执行 fn
func (d *Dao) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB(ctx).Transaction(fn)
}

func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// NewDBEngine 根据配置创建数据库连接并执行自动迁移
func NewDBEngine(c DatabaseConfig) (*gorm.DB, error) {
	dialector, err := userDialector(c.Type, dsn(c))
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`User` 的表名应该是 `t_user`
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database failed")
	}
	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	if len(c.Replicas) > 0 {
		var replicas []gorm.Dialector
		for _, r := range c.Replicas {
			rd, err := userDialector(c.Type, r)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, rd)
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errors.Wrap(err, "register db replicas failed")
		}
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && c.ConnMaxLifetime != "" {
		sqlDB.SetConnMaxLifetime(d)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && c.ConnMaxIdleTime != "" {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if isSQLite(c.Type) {
		// 连接串参数之外再执行一次，保证内存库的单连接也开启外键
		db.Exec("PRAGMA foreign_keys = ON")
	}

	if c.Tracing {
		if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil {
			return nil, errors.Wrap(err, "register tracing plugin failed")
		}
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate failed")
		}
	}

	return db, nil
}

func isSQLite(t string) bool {
	return t == "sqlite" || t == "sqlite-cgo"
}

// dsn 由配置拼出主库连接串
func dsn(c DatabaseConfig) string {
	switch c.Type {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local&clientFoundRows=true",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)
	case "postgres":
		host, port, err := net.SplitHostPort(c.Host)
		if err != nil {
			host, port = c.Host, "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Local",
			host, port, c.UserName, c.Password, c.Name, c.SSLMode)
	case "sqlite":
		if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	case "sqlite-cgo":
		if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return c.Path + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return ""
}

func userDialector(dbType, dsn string) (gorm.Dialector, error) {
	switch dbType {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "sqlite-cgo":
		return sqlitecgo.Open(dsn), nil
	}
	return nil, errors.Errorf("unsupported database type: %q", dbType)
}

// likePattern 构造子串匹配模式，转义通配符，使用 '!' 作为转义字符
func likePattern(keyword string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(keyword)) + "%"
}

func now() time.Time {
	return time.Now().Truncate(time.Millisecond)
}
