package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/faresld99/medical-appointment-app/internal/config"
	"github.com/faresld99/medical-appointment-app/internal/domain"
	"github.com/faresld99/medical-appointment-app/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// notificationMailData 是站内通知对应的邮件模板数据
type notificationMailData struct {
	FullName string
	Title    string
	Message  string
}

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("无法连接到数据库", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// 创建通道
	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	queues := map[string]amqp.Queue{}
	for _, name := range []string{"notification_queue", "email_queue"} {
		q, err := ch.QueueDeclare(
			name,  // 队列名称
			true,  // 是否持久化
			false, // 是否自动删除，设置为 false 可以避免没有消费者的时候自动删除队列
			false, // 是否独占，即是否允许多个消费者访问这个队列
			false, // 是否不等待，设置为 false，即等待 RabbitMQ 确认队列是否创建成功
			nil,   // 额外参数
		)
		if err != nil {
			logger.Error("无法声明队列", slog.String("queue", name), slog.String("error", err.Error()))
			return
		}
		queues[name] = q
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	notificationMsgs, err := ch.Consume(queues["notification_queue"].Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("无法消费通知消息", slog.String("error", err.Error()))
		os.Exit(1)
	}
	emailMsgs, err := ch.Consume(queues["email_queue"].Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("无法消费邮件消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 用于关闭 goroutine 的上下文
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-notificationMsgs:
				handleNotificationMessage(logger, cfg, repo, client, msg)
			case msg := <-emailMsgs:
				handleEmailMessage(logger, cfg, client, msg)
			}
		}
	}()

	// 等待 CTRL+C 信号
	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	// 优雅退出
	slog.Info("正在关闭 notifier...")
	cancel()
	wg.Wait() // 等待所有 goroutine 完成
	slog.Info("notifier 已成功关闭")
}

// handleNotificationMessage 先将通知落库，再给用户发一封提醒邮件
// 落库失败才 Nack，邮件发送失败只记日志，避免重复落库
func handleNotificationMessage(logger *slog.Logger, cfg *config.Config, repo *repository.Repository, client *mail.Client, msg amqp.Delivery) {
	logger.Info("收到通知消息", slog.String("message", string(msg.Body)))

	notificationMessage := domain.NotificationMessage{}
	if err := json.Unmarshal(msg.Body, &notificationMessage); err != nil {
		logger.Error("通知消息反序列化失败", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	notification := &domain.Notification{
		UserID:  notificationMessage.UserID,
		Kind:    notificationMessage.Kind,
		Title:   notificationMessage.Title,
		Message: notificationMessage.Message,
	}
	if notificationMessage.AppointmentID != 0 {
		notification.AppointmentID = &notificationMessage.AppointmentID
	}

	if err := repo.InsertNotification(notification); err != nil {
		logger.Error("通知落库失败", slog.String("error", err.Error()))
		_ = msg.Nack(false, true) // 将消息重新入队
		return
	}

	// 查出收件人邮箱
	user, err := repo.GetUserByID(notificationMessage.UserID)
	if err != nil {
		logger.Error("无法获取通知收件人", slog.String("error", err.Error()))
		_ = msg.Ack(false) // 站内通知已落库，不再重试
		return
	}

	mailMsg := mail.NewMsg()
	if err := mailMsg.From(cfg.Email.SMTP.Username); err != nil {
		logger.Error("无法设置邮件发件人", slog.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}
	if err := mailMsg.To(user.Email); err != nil {
		logger.Error("无法设置邮件收件人", slog.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	tmpl, err := template.ParseFiles("./templates/notification_email.html")
	if err != nil {
		logger.Error("无法解析邮件模板", slog.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}
	data := notificationMailData{
		FullName: user.FullName,
		Title:    notificationMessage.Title,
		Message:  notificationMessage.Message,
	}
	if err := mailMsg.SetBodyHTMLTemplate(tmpl, data); err != nil {
		logger.Error("无法设置邮件正文", slog.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}
	mailMsg.Subject("预约系统 - " + notificationMessage.Title)

	if err := client.DialAndSend(mailMsg); err != nil {
		logger.Error("通知邮件发送失败", slog.String("error", err.Error()))
	}

	_ = msg.Ack(false)
}

func handleEmailMessage(logger *slog.Logger, cfg *config.Config, client *mail.Client, msg amqp.Delivery) {
	logger.Info("收到邮件消息", slog.String("message", string(msg.Body)))

	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
		logger.Error("邮件信息反序列化失败", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	mailMsg := mail.NewMsg()
	if err := mailMsg.From(cfg.Email.SMTP.Username); err != nil {
		logger.Error("无法设置邮件发件人", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := mailMsg.To(mailMessage.To); err != nil {
		logger.Error("无法设置邮件收件人", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	switch mailMessage.Type {
	case "reset_password":
		tmpl, err := template.ParseFiles("./templates/reset_password_otp_email.html")
		if err != nil {
			logger.Error("无法解析邮件模板", slog.String("error", err.Error()))
			_ = msg.Nack(false, false)
			return
		}
		if err := mailMsg.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
			logger.Error("无法设置邮件正文", slog.String("error", err.Error()))
			_ = msg.Nack(false, false)
			return
		}
		mailMsg.Subject("预约系统 - 重置密码")
	default:
		logger.Error("不支持的邮件类型", slog.String("type", mailMessage.Type))
		_ = msg.Nack(false, false)
		return
	}

	if err := client.DialAndSend(mailMsg); err != nil {
		logger.Error("邮件发送失败", slog.String("error", err.Error()))
		_ = msg.Nack(false, true) // 将消息重新入队
		return
	}

	_ = msg.Ack(false)
}
