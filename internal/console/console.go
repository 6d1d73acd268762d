package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Dhruv-477/SGPA-calculator/config"
	"github.com/Dhruv-477/SGPA-calculator/internal/dto"
	"github.com/Dhruv-477/SGPA-calculator/internal/model"
	"github.com/Dhruv-477/SGPA-calculator/internal/service"
)

// inputLine 读取到的一行或读取错误
type inputLine struct {
	text string
	err  error
}

// 菜单选项
const (
	optionAddSemester = "1"
	optionViewSGPA    = "2"
	optionSummary     = "3"
	optionExit        = "4"
)

// Console 基于文本的交互界面
//
// 读写均通过 io.Reader / io.Writer，便于测试时注入脚本输入。
// 输入由独立 goroutine 按行读取，提示等待期间可被 ctx 取消。
type Console struct {
	in     *bufio.Reader
	lines  chan inputLine
	out    io.Writer
	cfg    *config.Config
	logger *zap.Logger

	svc *service.Service
}

// New 创建交互界面
func New(in io.Reader, out io.Writer, cfg *config.Config, logger *zap.Logger) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		cfg:    cfg,
		logger: logger,
	}
}

// Run 运行一次会话，直到用户选择退出或输入结束
//
// 业务错误在每个菜单操作内打印后继续；读取失败、导出失败或 ctx 取消（Ctrl+C）时返回错误。
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.lines = make(chan inputLine)
	go c.readLoop(ctx)

	if c.cfg.Console.Banner {
		c.println("=================================")
		c.println("   SGPA & CGPA Calculator")
		c.println("=================================")
		c.println("")
	}

	name, err := c.prompt(ctx, "Enter student name: ")
	if err != nil {
		return c.endOfInput(err)
	}
	student, err := model.NewStudent(name)
	if err != nil {
		c.println("Student name cannot be empty.")
		return nil
	}

	c.svc = service.NewService(c.cfg, student, c.logger)
	c.logger.Info("会话开始", zap.String("student", student.Name()))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println("")
		c.println("Options:")
		c.println("1. Add semester data")
		c.println("2. View SGPA for specific semester")
		c.println("3. View CGPA and summary")
		c.println("4. Exit")

		choice, err := c.prompt(ctx, "Choose an option (1-4): ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return c.finish(ctx)
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case optionAddSemester:
			err = c.addSemesterData(ctx)
		case optionViewSGPA:
			err = c.viewSGPA(ctx)
		case optionSummary:
			c.viewSummary(ctx)
		case optionExit:
			c.println("Thank you for using SGPA & CGPA Calculator!")
			return c.finish(ctx)
		default:
			c.println("Invalid option. Please try again.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return c.finish(ctx)
			}
			return err
		}
	}
}

// ────────────────────── 1. 录入学期 ──────────────────────

func (c *Console) addSemesterData(ctx context.Context) error {
	raw, err := c.prompt(ctx, "Enter semester number: ")
	if err != nil {
		return err
	}
	number, ok := parsePositiveInt(raw)
	if !ok {
		c.println("Invalid semester number. Please enter a positive integer.")
		return nil
	}

	if c.svc.Grade.Student().HasSemester(number) {
		c.printf("Semester %d already exists. Data will be replaced.\n", number)
	}

	raw, err = c.prompt(ctx, "Enter number of subjects: ")
	if err != nil {
		return err
	}
	count, ok := parsePositiveInt(raw)
	if !ok {
		c.println("Invalid number of subjects. Please enter a positive integer.")
		return nil
	}

	input := &dto.SemesterInput{Number: number}
	for i := 1; i <= count; i++ {
		c.printf("\nSubject %d:\n", i)
		sub, ok, err := c.readSubject(ctx)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		input.Subjects = append(input.Subjects, *sub)
		c.printf("  Added: %s (%s GP, %d CH)\n", sub.Name, formatFloat(sub.GradePoint), sub.CreditHours)
	}

	if len(input.Subjects) == 0 {
		c.println("No valid subjects were added. Semester not saved.")
		return nil
	}

	resp, _, err := c.svc.Grade.RecordSemester(ctx, input)
	if err != nil {
		c.printf("Error adding semester data: %v\n", err)
		return nil
	}

	c.printf("\nSemester %d added successfully!\n", number)
	c.printf("SGPA for Semester %d: %.2f\n", number, resp.SGPA)
	return nil
}

// readSubject 读取一门课程；字段非法时打印提示并返回 ok=false（跳过该课程）
func (c *Console) readSubject(ctx context.Context) (*dto.SubjectInput, bool, error) {
	name, err := c.prompt(ctx, "  Subject name: ")
	if err != nil {
		return nil, false, err
	}
	if dto.ValidateVar(name, "notblank") != nil {
		c.println("  Subject name cannot be empty. Skipping this subject.")
		return nil, false, nil
	}

	raw, err := c.prompt(ctx, "  Grade point (0-10): ")
	if err != nil {
		return nil, false, err
	}
	gp, perr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if perr != nil || dto.ValidateVar(gp, "gte=0,lte=10") != nil {
		c.println("  Invalid grade point. Please enter a value between 0 and 10. Skipping this subject.")
		return nil, false, nil
	}

	raw, err = c.prompt(ctx, "  Credit hours: ")
	if err != nil {
		return nil, false, err
	}
	ch, ok := parsePositiveInt(raw)
	if !ok {
		c.println("  Invalid credit hours. Please enter a positive integer. Skipping this subject.")
		return nil, false, nil
	}

	return &dto.SubjectInput{Name: name, GradePoint: gp, CreditHours: ch}, true, nil
}

// ────────────────────── 2. 查看单学期 SGPA ──────────────────────

func (c *Console) viewSGPA(ctx context.Context) error {
	available := c.svc.Grade.AvailableSemesters(ctx)
	if len(available) == 0 {
		c.println("No semester data available. Please add some semesters first.")
		return nil
	}

	c.println("\nAvailable semesters:")
	for _, n := range available {
		c.printf("  Semester %d\n", n)
	}

	raw, err := c.prompt(ctx, "Enter semester number to view SGPA: ")
	if err != nil {
		return err
	}
	number, perr := strconv.Atoi(strings.TrimSpace(raw))
	if perr != nil {
		c.println("Invalid semester number.")
		return nil
	}

	resp, err := c.svc.Grade.SemesterDetail(ctx, number)
	if err != nil {
		c.printf("Error: %v\n", err)
		return nil
	}

	c.printf("\nSemester %d Details:\n", number)
	c.println("==================")
	for _, sub := range resp.Subjects {
		c.printf("  %s\n", sub.Display)
	}
	c.printf("Total Credit Hours: %d\n", resp.TotalCreditHours)
	c.printf("SGPA: %.2f\n", resp.SGPA)
	return nil
}

// ────────────────────── 3. 查看 CGPA 与汇总 ──────────────────────

func (c *Console) viewSummary(ctx context.Context) {
	if len(c.svc.Grade.AvailableSemesters(ctx)) == 0 {
		c.println("No semester data available. Please add some semesters first.")
		return
	}

	resp, err := c.svc.Grade.Summary(ctx)
	if err != nil {
		c.printf("Error calculating CGPA: %v\n", err)
		return
	}
	c.println("\n" + resp.Report)
}

// ── 会话结束 ──

// finish 在配置了导出路径且有数据时写出 Excel 汇总
func (c *Console) finish(ctx context.Context) error {
	path := c.cfg.Export.Path
	if path == "" || c.svc == nil || c.svc.Grade.Student().SemesterCount() == 0 {
		return nil
	}

	buf, _, err := c.svc.Export.ExportSummary(ctx)
	if err != nil {
		return fmt.Errorf("导出汇总失败: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}

	c.printf("Summary exported to %s\n", path)
	c.logger.Info("汇总文件已写出", zap.String("path", path))
	return nil
}

func (c *Console) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ── 输入输出辅助 ──

// prompt 打印提示并读取一行；输入结束时返回 io.EOF，ctx 取消时返回 ctx.Err()
func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	select {
	case <-ctx.Done():
		c.println("")
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok || errors.Is(line.err, io.EOF) {
			c.println("")
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return line.text, nil
	}
}

// readLoop 逐行读取输入并投递给 prompt，不限制单行长度
func (c *Console) readLoop(ctx context.Context) {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		if text != "" || err == nil {
			if !c.deliver(ctx, inputLine{text: strings.TrimRight(text, "\r\n")}) {
				return
			}
		}
		if err != nil {
			c.deliver(ctx, inputLine{err: err})
			return
		}
	}
}

func (c *Console) deliver(ctx context.Context, line inputLine) bool {
	select {
	case c.lines <- line:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func parsePositiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || dto.ValidateVar(n, "gt=0") != nil {
		return 0, false
	}
	return n, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
