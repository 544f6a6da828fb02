package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseDate проверяет парсинг даты из строки
func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-03-15"), date)

	for _, s := range []string{"", "15-03-2026", "2026-13-01", "2026-02-30", "not-a-date"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input=%q", s)
	}
}

// TestDate_InPast проверяет сравнение с текущим днем
func TestDate_InPast(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	assert.True(t, Date("2026-03-14").InPast(now))
	assert.False(t, Date("2026-03-15").InPast(now), "сегодняшний день не считается прошедшим")
	assert.False(t, Date("2026-03-16").InPast(now))
}

// TestDate_AddDays проверяет сдвиг даты с переходом через месяц
func TestDate_AddDays(t *testing.T) {
	date, err := Date("2026-03-30").AddDays(3)
	require.NoError(t, err)
	assert.Equal(t, Date("2026-04-02"), date)

	date, err = Date("2026-03-01").AddDays(-1)
	require.NoError(t, err)
	assert.Equal(t, Date("2026-02-28"), date)
}

// TestDate_Scan проверяет чтение даты из разных представлений драйвера
func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, Date("2026-03-15"), d)

	require.NoError(t, d.Scan("2026-04-01"))
	assert.Equal(t, Date("2026-04-01"), d)

	require.NoError(t, d.Scan([]byte("2026-05-20")))
	assert.Equal(t, Date("2026-05-20"), d)

	assert.Error(t, d.Scan(42))
}

// TestDate_Value проверяет сериализацию для драйвера
func TestDate_Value(t *testing.T) {
	v, err := Date("2026-03-15").Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", v)

	_, err = Date("garbage").Value()
	assert.Error(t, err)
}
