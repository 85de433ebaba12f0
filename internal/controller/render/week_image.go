package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/popiko/lessons_bot/internal/controller/common/formatting"
	"github.com/popiko/lessons_bot/internal/model"
	"github.com/popiko/lessons_bot/internal/schedule"
	"github.com/popiko/lessons_bot/internal/service"
)

// FontStyle стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 9
	defaultMaxHour   = 18
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 15.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{120, 190, 255, 110}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 228, 232, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	slotAvailableColor   = color.RGBA{133, 193, 85, 220}
	slotBookedColor      = color.RGBA{100, 160, 235, 230}
	slotReservedColor    = color.RGBA{245, 170, 80, 230}
	slotUnavailableColor = color.RGBA{190, 190, 190, 200}
	slotTextColor        = color.RGBA{20, 24, 28, 230}
	slotShadowColor      = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{90, 95, 100, 220}
	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// WeekInput данные для картинки недели
type WeekInput struct {
	Slots     []schedule.AnnotatedSlot
	Role      model.Role
	WeekStart time.Time // понедельник недели
	Now       time.Time
	Location  *time.Location
}

// hourRange диапазон часов на картинке, end включительно
type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont выставляет шрифт нужного размера, basicfont если шрифт не разобрался
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		data := goregular.TTF
		if style == FontStyleBold {
			data = gobold.TTF
		}
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			parsed = nil
		}
		cachedFonts[style] = parsed
	}
	fontsMu.Unlock()

	if parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// WeekImage рисует неделю PNG-картинкой: слоты раскрашены так, как их видит роль
func WeekImage(in WeekInput) ([]byte, error) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	weekStart := normalizeToDay(in.WeekStart.In(loc))
	now := in.Now.In(loc)
	today := normalizeToDay(now)
	highlightToday := !today.Before(weekStart) && today.Before(weekStart.AddDate(0, 0, totalDaysInWeek))

	slotsByDay := groupSlotsByDay(in.Slots, loc)
	hours := calculateHourRange(in.Slots, loc)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, weekStart)
	drawHourLabels(dc, hours, cellHeight)

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		date := weekStart.AddDate(0, 0, dayIndex)
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, highlightToday && date.Equal(today))
		drawDayHeader(dc, date, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, slot := range slotsByDay[date.Format("2006-01-02")] {
			drawSlot(dc, slot, in.Role, loc, x, y, dayWidth, hours, cellHeight)
		}
	}

	if highlightToday {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	}
	drawLegend(dc, in.Role, dayWidth)

	return encodeImage(dc)
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func groupSlotsByDay(slots []schedule.AnnotatedSlot, loc *time.Location) map[string][]schedule.AnnotatedSlot {
	byDay := make(map[string][]schedule.AnnotatedSlot)
	for _, slot := range slots {
		key := slot.Start.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], slot)
	}
	return byDay
}

// calculateHourRange часы от первого слота до последнего с запасом
func calculateHourRange(slots []schedule.AnnotatedSlot, loc *time.Location) hourRange {
	minHour := 24
	maxHour := 0

	for _, slot := range slots {
		start, end := slot.Start.In(loc), slot.End.In(loc)
		endH := end.Hour()
		if end.Minute() > 0 {
			endH++
		}
		if start.Hour() < minHour {
			minHour = start.Hour()
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := max(minHour-hourPaddingTop, 0)
	endHour := min(maxHour+hourPaddingBot, 23)

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader заголовок с месяцем и диапазоном дат
func drawHeader(dc *gg.Context, weekStart time.Time) {
	weekEnd := weekStart.AddDate(0, 0, totalDaysInWeek-1)

	title := formatting.MonthName(weekStart.Month())
	if weekEnd.Month() != weekStart.Month() {
		title += " - " + formatting.MonthName(weekEnd.Month())
	}
	title = fmt.Sprintf("%s %d  (%s - %s)", title, weekEnd.Year(), weekStart.Format("02.01"), weekEnd.Format("02.01"))

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleDefault)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(formatting.WeekdayShort(date.Weekday()), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSlot рисует один слот
func drawSlot(dc *gg.Context, slot schedule.AnnotatedSlot, role model.Role, loc *time.Location,
	x, y float64, dayWidth int, hours hourRange, cellHeight float64) {

	start, end := slot.Start.In(loc), slot.End.In(loc)
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := float64(end.Hour()) + float64(end.Minute())/60.0
	if end.Day() != start.Day() {
		endHour = 24
	}

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := max((endHour-startHour)*cellHeight, minSlotHeight)

	fillColor := slotColor(service.DisplayStatus(slot.Classification, role))
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	loadFont(dc, slotTimeFontSize, FontStyleDefault)
	dc.SetColor(slotTextColor)
	txtX := x + float64(dayPaddingX) + 8
	dc.DrawStringAnchored(formatting.FormatTimeRange(start, end), txtX, slotY+2+(slotHeight-4)/2, 0, 0.35)

	// число свободных инструкторов видно в режиме с окнами
	if n := len(slot.AvailableInstructors); n > 1 && role.IsStaff() {
		dc.DrawStringAnchored(fmt.Sprintf("×%d", n), x+float64(dayWidth)-float64(dayPaddingX)-8, slotY+2+(slotHeight-4)/2, 1, 0.35)
	}
}

// slotColor цвет по отображаемому статусу
func slotColor(display string) color.RGBA {
	switch display {
	case "available":
		return slotAvailableColor
	case "booked":
		return slotBookedColor
	case "reserved":
		return slotReservedColor
	default:
		return slotUnavailableColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end+1) {
		return
	}

	currentTimeY := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), currentTimeY, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), currentTimeY)
	dc.Stroke()
}

type legendItem struct {
	Label string
	Clr   color.Color
}

// legendItems подписи легенды. Родитель не видит, что слот занят другим
func legendItems(role model.Role) []legendItem {
	items := []legendItem{
		{"Свободно", slotAvailableColor},
		{"Ваша запись", slotBookedColor},
	}
	if role.IsStaff() {
		items = append(items, legendItem{"Занято", slotReservedColor})
	}
	return append(items, legendItem{"Недоступно", slotUnavailableColor})
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, role model.Role, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 130.0

	dc.SetColor(legendTextColor)

	boxW := 20.0
	boxH := 14.0
	liY := legendY + 22

	for _, item := range legendItems(role) {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, FontStyleDefault)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
