// go test -v ./...

package enumerable

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

type BMember struct {
	Name string
	ID   int64
	Age  int
	Sex  int8
}
type SMember struct {
	Name string
	ID   int64
}

var members = []*BMember{
	{ID: 1, Name: "张三", Sex: 1, Age: 28},
	{ID: 2, Name: "李四", Sex: 2, Age: 28},
	{ID: 3, Name: "王五", Sex: 1, Age: 29},
	{ID: 4, Name: "老六", Sex: 2, Age: 29},
}

// mustPanicInvalid 断言 f 触发 panic 且 panic 值包装 ErrInvalidArgument
func mustPanicInvalid(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("期望 panic，实际没有发生")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("期望 panic 值包装 ErrInvalidArgument，实际得到 %v", r)
		}
	}()
	f()
}

// TestMemberWhere 测试成员条件查询
func TestMemberWhere(t *testing.T) {
	var query = From(members).
		Where(func(m *BMember) bool { return m.Age == 28 })
	if query.Count() != 2 {
		t.Errorf("年龄28的人数: 期望 2，实际得到 %d", query.Count())
	}
	query = query.Where(func(m *BMember) bool { return m.Sex == 1 })
	if query.Count() != 1 {
		t.Errorf("年龄28的男生人数: 期望 1，实际得到 %d", query.Count())
	}
	first, err := query.First()
	if err != nil {
		t.Fatalf("First 返回错误: %v", err)
	}
	if first.Name != "张三" {
		t.Errorf("年龄28的男生姓名: 期望 张三，实际得到 %s", first.Name)
	}
	fallback := query.Where(func(m *BMember) bool { return m.Sex == 2 }).FirstDefault(&BMember{})
	if fallback.Name != "" {
		t.Errorf("期望空姓名兜底值，实际得到 %s", fallback.Name)
	}
}

// TestMemberAggregates 测试成员数值聚合
func TestMemberAggregates(t *testing.T) {
	total, err := SumBy(From(members), func(m *BMember) int { return m.Age })
	if err != nil || total != 114 {
		t.Errorf("年龄总和: 期望 114，实际得到 %d (err=%v)", total, err)
	}
	avg, err := AverageBy(From(members), func(m *BMember) int { return m.Age })
	if err != nil || avg != 28.5 {
		t.Errorf("平均年龄: 期望 28.5，实际得到 %v (err=%v)", avg, err)
	}
	youngest, err := MinBy(From(members), func(m *BMember) int { return m.Age })
	if err != nil || youngest.Name != "张三" {
		t.Errorf("最小年龄成员: 期望 张三，实际得到 %+v (err=%v)", youngest, err)
	}
	oldest, err := MaxBy(From(members), func(m *BMember) int { return m.Age })
	if err != nil || oldest.Name != "王五" {
		t.Errorf("最大年龄成员: 期望 王五，实际得到 %+v (err=%v)", oldest, err)
	}
}

// TestMemberPage 测试成员分页
func TestMemberPage(t *testing.T) {
	page, pageSize := 1, 3
	out1 := From(members).Skip((page - 1) * pageSize).Take(pageSize).ToSlice()
	if len(out1) != 3 {
		t.Fatalf("期望 3 个元素，实际得到 %d", len(out1))
	}
	page = 2
	out2 := From(members).Page(page, pageSize).ToSlice()
	if len(out2) != 1 {
		t.Fatalf("期望 1 个元素，实际得到 %d", len(out2))
	}
	if out2[0].Name != "老六" {
		t.Errorf("第二页成员: 期望 老六，实际得到 %s", out2[0].Name)
	}
}

// TestMemberOrder 测试成员多级排序
func TestMemberOrder(t *testing.T) {
	sorted := From(members).
		Order(Desc(func(m *BMember) int { return m.Age })).
		Then(Asc(func(m *BMember) int64 { return m.ID })).
		ToQuery().
		ToSlice()
	names := make([]string, 0, len(sorted))
	for _, m := range sorted {
		names = append(names, m.Name)
	}
	expected := []string{"王五", "老六", "张三", "李四"}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("索引 %d: 期望 %s，实际得到 %s", i, name, names[i])
		}
	}
}

// TestMemberProjection 测试成员投影为精简结构
func TestMemberProjection(t *testing.T) {
	small := Select(From(members), func(m *BMember) *SMember {
		return &SMember{ID: m.ID, Name: m.Name}
	}).ToSlice()
	if len(small) != 4 {
		t.Fatalf("期望 4 个元素，实际得到 %d", len(small))
	}
	for i, s := range small {
		if s.ID != members[i].ID || s.Name != members[i].Name {
			t.Errorf("索引 %d: 期望 %+v，实际得到 %+v", i, members[i], s)
		}
	}
	fmt.Printf("精简成员: %+v %+v \n", small[0], small[1])
}

// ============================================================================
// 数据源函数测试
// ============================================================================

// TestFromSlice 测试从切片创建 Query
func TestFromSlice(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}
	result := From(nums).ToSlice()

	if len(result) != 5 {
		t.Errorf("Expected 5 items, got %d", len(result))
	}
	for i, v := range result {
		if v != nums[i] {
			t.Errorf("索引 %d: 期望 %d，实际得到 %d", i, nums[i], v)
		}
	}
}

// TestFromSeq 测试从 iter.Seq 创建 Query
func TestFromSeq(t *testing.T) {
	seq := func(yield func(int) bool) {
		for i := 1; i <= 3; i++ {
			if !yield(i) {
				return
			}
		}
	}
	q := FromSeq(seq)
	result := q.Where(func(i int) bool { return i != 2 }).ToSlice()
	expected := []int{1, 3}
	if len(result) != len(expected) {
		t.Fatalf("期望 %d 个元素，实际得到 %d", len(expected), len(result))
	}
	// 生成器闭包每次重启，序列可重复遍历
	if q.Count() != 3 || q.Count() != 3 {
		t.Errorf("期望重复遍历都得到 3 个元素")
	}
}

// TestFromChannel 测试从 Channel 创建 Query
func TestFromChannel(t *testing.T) {
	ch := make(chan int, 5)
	go func() {
		for i := 1; i <= 5; i++ {
			ch <- i
		}
		close(ch)
	}()

	q := FromChannel(ch)
	result := q.ToSlice()
	expected := []int{1, 2, 3, 4, 5}

	if len(result) != len(expected) {
		t.Errorf("期望 %d 个元素，实际得到 %d", len(expected), len(result))
	}

	// Channel 是一次性源，第二次遍历只能看到已耗尽的空序列
	if again := q.ToSlice(); len(again) != 0 {
		t.Errorf("期望第二次遍历为空，实际得到 %d 个元素", len(again))
	}
}

// TestFromString 测试从字符串创建 Query，按 UTF-8 字符切分
func TestFromString(t *testing.T) {
	result := FromString("Go语言🌍").ToSlice()
	expected := []string{"G", "o", "语", "言", "🌍"}

	if len(result) != len(expected) {
		t.Fatalf("期望 %d 个字符，实际得到 %d", len(expected), len(result))
	}
	for i, v := range result {
		if v != expected[i] {
			t.Errorf("索引 %d: 期望 %s，实际得到 %s", i, expected[i], v)
		}
	}
}

// TestFromMap 测试从 Map 创建 Query
func TestFromMap(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	result := FromMap(m).ToSlice()

	if len(result) != 3 {
		t.Errorf("期望 3 个元素，实际得到 %d", len(result))
	}

	// 验证所有键值对都存在
	for _, kv := range result {
		if v, ok := m[kv.Key]; !ok || v != kv.Value {
			t.Errorf("意外的键值对: %v", kv)
		}
	}
}

// TestEmpty 测试空查询
func TestEmpty(t *testing.T) {
	if result := Empty[int]().ToSlice(); len(result) != 0 {
		t.Errorf("期望 0 个元素，实际得到 %d", len(result))
	}
	if Empty[string]().Any() {
		t.Error("期望空查询 Any 返回 false")
	}
}

// TestRange 测试整数范围生成
func TestRange(t *testing.T) {
	result := Range(-2, 5).ToSlice()
	expected := []int{-2, -1, 0, 1, 2}
	if len(result) != len(expected) {
		t.Fatalf("期望 %d 个元素，实际得到 %d", len(expected), len(result))
	}
	for i, v := range result {
		if v != expected[i] {
			t.Errorf("索引 %d: 期望 %d，实际得到 %d", i, expected[i], v)
		}
	}

	if got := Range(10, 0).Count(); got != 0 {
		t.Errorf("count 为 0 时期望空序列，实际得到 %d 个元素", got)
	}
	if got := Range(10, -3).Count(); got != 0 {
		t.Errorf("count 为负时期望空序列，实际得到 %d 个元素", got)
	}
}

// TestSequence 测试按步进生成数值序列
func TestSequence(t *testing.T) {
	up := Sequence(1, 5, 1).ToSlice()
	if len(up) != 5 || up[0] != 1 || up[4] != 5 {
		t.Errorf("期望 [1 2 3 4 5]，实际得到 %v", up)
	}

	down := Sequence(5, 1, -2).ToSlice()
	expected := []int{5, 3, 1}
	if len(down) != len(expected) {
		t.Fatalf("期望 %d 个元素，实际得到 %d", len(expected), len(down))
	}
	for i, v := range down {
		if v != expected[i] {
			t.Errorf("索引 %d: 期望 %d，实际得到 %d", i, expected[i], v)
		}
	}

	// 0.25 可被二进制精确表示，累加不会漂移
	floats := Sequence(0.0, 1.0, 0.25).ToSlice()
	if len(floats) != 5 || floats[4] != 1.0 {
		t.Errorf("期望 5 个元素且末位为 1.0，实际得到 %v", floats)
	}
}

// TestSequencePanics 测试非法步进立即 panic
func TestSequencePanics(t *testing.T) {
	mustPanicInvalid(t, func() { Sequence(1, 5, 0) })
	mustPanicInvalid(t, func() { Sequence(1, 5, -1) })
	mustPanicInvalid(t, func() { Sequence(5, 1, 1) })
	mustPanicInvalid(t, func() { Sequence(math.NaN(), 1.0, 0.5) })
	mustPanicInvalid(t, func() { Sequence(0.0, 1.0, math.NaN()) })
}

// TestRepeat 测试重复元素序列
func TestRepeat(t *testing.T) {
	result := Repeat("x", 3).ToSlice()
	if len(result) != 3 {
		t.Fatalf("期望 3 个元素，实际得到 %d", len(result))
	}
	for i, v := range result {
		if v != "x" {
			t.Errorf("索引 %d: 期望 x，实际得到 %s", i, v)
		}
	}

	if got := Repeat(1, 0).Count(); got != 0 {
		t.Errorf("count 为 0 时期望空序列，实际得到 %d 个元素", got)
	}

	// 省略 count 时为无限序列，用 Take 截断消费
	infinite := Repeat(7).Take(4).ToSlice()
	if len(infinite) != 4 {
		t.Errorf("期望 4 个元素，实际得到 %d", len(infinite))
	}
}

// ============================================================================
// 遍历与输出测试
// ============================================================================

// TestReplay 测试派生查询可重复遍历且结果一致
func TestReplay(t *testing.T) {
	q := From([]int{1, 2, 3, 4, 5, 6}).Where(func(i int) bool { return i%2 == 0 })
	first := q.ToSlice()
	second := q.ToSlice()
	if len(first) != len(second) {
		t.Fatalf("两次遍历长度不同: %d 与 %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("索引 %d: 第一次 %d，第二次 %d", i, first[i], second[i])
		}
	}
}

// TestSeq 测试 for-range 直接消费查询
func TestSeq(t *testing.T) {
	sum := 0
	for v := range Range(1, 5).Seq() {
		sum += v
	}
	if sum != 15 {
		t.Errorf("期望 15，实际得到 %d", sum)
	}

	// 提前 break 不影响后续重新遍历
	count := 0
	for range Range(1, 5).Seq() {
		count++
		if count == 2 {
			break
		}
	}
	if got := Range(1, 5).Count(); got != 5 {
		t.Errorf("期望 5 个元素，实际得到 %d", got)
	}
}

// TestAppendTo 测试结果追加到已有缓冲
func TestAppendTo(t *testing.T) {
	buf := []int{9}
	result := From([]int{1, 2}).AppendTo(buf)
	expected := []int{9, 1, 2}
	if len(result) != len(expected) {
		t.Fatalf("期望 %d 个元素，实际得到 %d", len(expected), len(result))
	}
	for i, v := range result {
		if v != expected[i] {
			t.Errorf("索引 %d: 期望 %d，实际得到 %d", i, expected[i], v)
		}
	}

	filtered := From([]int{1, 2, 3, 4}).Where(func(i int) bool { return i > 2 }).AppendTo(nil)
	if len(filtered) != 2 {
		t.Errorf("期望 2 个元素，实际得到 %d", len(filtered))
	}
}

// TestToChannel 测试输出到通道与上下文取消
func TestToChannel(t *testing.T) {
	ctx := context.Background()
	got := 0
	for v := range Range(1, 5).ToChannel(ctx) {
		got += v
	}
	if got != 15 {
		t.Errorf("期望 15，实际得到 %d", got)
	}

	cancelCtx, cancel := context.WithCancel(context.Background())
	ch := Range(0, 100000).ToChannel(cancelCtx)
	if _, ok := <-ch; !ok {
		t.Fatal("期望能读到第一个元素")
	}
	cancel()
	drained := 0
	for range ch {
		drained++
	}
	// 取消后最多残留一个已发送的元素，通道随后关闭
	if drained > 1 {
		t.Errorf("取消后期望最多 1 个残留元素，实际得到 %d", drained)
	}
}
