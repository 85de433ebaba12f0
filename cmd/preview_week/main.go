package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/controller/render"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
)

// Рисует картинку недели на тестовых данных: go run ./cmd/preview_week [2025-07-07] [parent|instructor]
func main() {
	now := time.Now()
	day := now
	if len(os.Args) > 1 {
		parsed, err := time.ParseInLocation("2006-01-02", os.Args[1], time.Local)
		if err != nil {
			fmt.Printf("Неверная дата %q: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		day = parsed
	}
	role := model.RoleInstructor
	if len(os.Args) > 2 {
		role = model.Role(os.Args[2])
	}

	startDate := formatting.WeekStart(day)
	endDate := startDate.AddDate(0, 0, 6)

	engine := schedule.NewEngine(schedule.DefaultTemplate(), schedule.OverlapContainment)
	slots := engine.GenerateSlots(startDate, endDate)
	if len(slots) == 0 {
		fmt.Println("На этой неделе по шаблону нет уроков")
		os.Exit(0)
	}

	self := uuid.New()
	other := uuid.New()
	anna := uuid.New()
	oleg := uuid.New()

	// Два инструктора на всех активных днях, Олег только до обеда
	var windows []schedule.InstructorWindow
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		summer := engine.Template().SeasonOf(d) == schedule.SeasonSummer
		windows = append(windows,
			schedule.InstructorWindow{InstructorID: anna, Weekday: d.Weekday(), InSeason: summer,
				WindowStart: schedule.MustTimeOfDay("08:00"), WindowEnd: schedule.MustTimeOfDay("20:00")},
			schedule.InstructorWindow{InstructorID: oleg, Weekday: d.Weekday(), InSeason: summer,
				WindowStart: schedule.MustTimeOfDay("08:00"), WindowEnd: schedule.MustTimeOfDay("13:00")},
		)
	}

	// Каждый третий слот занят кем-то, первый слот свой, четвёртый без инструктора
	var booked []schedule.BookedInterval
	for i, s := range slots {
		switch {
		case i == 0:
			booked = append(booked, schedule.BookedInterval{Start: s.Start, End: s.End, OwnerID: self, InstructorID: &anna, Status: model.BookingStatusBooked})
		case i == 3:
			booked = append(booked, schedule.BookedInterval{Start: s.Start, End: s.End, OwnerID: other, Status: model.BookingStatusBooked})
		case i%3 == 0:
			booked = append(booked, schedule.BookedInterval{Start: s.Start, End: s.End, OwnerID: other, InstructorID: &oleg, Status: model.BookingStatusBooked})
		}
	}

	annotated := engine.Reconcile(slots, booked, schedule.Viewer{AccountID: self}, windows)

	imageData, err := render.WeekImage(render.WeekInput{
		Slots:     annotated,
		Role:      role,
		WeekStart: startDate,
		Now:       now,
		Location:  time.Local,
	})
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "week.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s\n", filename)
	fmt.Printf("📅 Период: %s - %s\n", startDate.Format("02.01.2006"), endDate.Format("02.01.2006"))
	fmt.Printf("📊 Слотов: %d, записей: %d\n", len(annotated), len(booked))
}
