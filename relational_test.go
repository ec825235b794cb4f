package enumerable

import (
	"testing"

	randomdata "github.com/Pallinder/go-randomdata"
)

type Customer struct {
	ID   int64
	Name string
	City string
}

type Order struct {
	ID         int64
	CustomerID int64
	Amount     int
}

// 名字随机生成，断言只依赖 ID、城市与金额
func sampleCustomers() []Customer {
	return []Customer{
		{ID: 1, Name: randomdata.SillyName(), City: "北京"},
		{ID: 2, Name: randomdata.SillyName(), City: "上海"},
		{ID: 3, Name: randomdata.SillyName(), City: "北京"},
		{ID: 4, Name: randomdata.SillyName(), City: "广州"},
	}
}

func sampleOrders() []Order {
	return []Order{
		{ID: 101, CustomerID: 1, Amount: 50},
		{ID: 102, CustomerID: 2, Amount: 30},
		{ID: 103, CustomerID: 1, Amount: 20},
		{ID: 104, CustomerID: 9, Amount: 70},
	}
}

// ============================================================================
// 分组测试
// ============================================================================

// TestGroupBy 测试分组按键首次出现顺序产出
func TestGroupBy(t *testing.T) {
	customers := sampleCustomers()
	groups := GroupBy(From(customers), func(c Customer) string { return c.City }).ToSlice()

	if len(groups) != 3 {
		t.Fatalf("期望 3 个分组，实际得到 %d", len(groups))
	}
	expectedKeys := []string{"北京", "上海", "广州"}
	for i, g := range groups {
		if g.Key != expectedKeys[i] {
			t.Errorf("分组 %d: 期望键 %s，实际得到 %s", i, expectedKeys[i], g.Key)
		}
	}
	if len(groups[0].Value) != 2 {
		t.Errorf("期望北京分组 2 个成员，实际得到 %d", len(groups[0].Value))
	}
	if groups[0].Value[0].ID != 1 || groups[0].Value[1].ID != 3 {
		t.Error("期望组内成员保持源顺序")
	}
}

// TestGroupBySelect 测试分组后映射组内元素
func TestGroupBySelect(t *testing.T) {
	orders := sampleOrders()
	groups := GroupBySelect(From(orders),
		func(o Order) int64 { return o.CustomerID },
		func(o Order) int { return o.Amount }).ToSlice()

	if len(groups) != 3 {
		t.Fatalf("期望 3 个分组，实际得到 %d", len(groups))
	}
	if groups[0].Key != 1 || len(groups[0].Value) != 2 {
		t.Errorf("期望客户 1 的分组含 2 笔金额，实际得到 %+v", groups[0])
	}
	if groups[0].Value[0] != 50 || groups[0].Value[1] != 20 {
		t.Errorf("期望金额 [50 20]，实际得到 %v", groups[0].Value)
	}
}

// TestCountBy 测试按键计数
func TestCountBy(t *testing.T) {
	customers := sampleCustomers()
	counts := CountBy(From(customers), func(c Customer) string { return c.City }).ToSlice()

	if len(counts) != 3 {
		t.Fatalf("期望 3 个键，实际得到 %d", len(counts))
	}
	if counts[0].Key != "北京" || counts[0].Value != 2 {
		t.Errorf("期望北京计 2，实际得到 %+v", counts[0])
	}
	if counts[1].Value != 1 || counts[2].Value != 1 {
		t.Errorf("期望上海、广州各计 1，实际得到 %+v", counts)
	}
}

// TestAggregateBy 测试按键折叠
func TestAggregateBy(t *testing.T) {
	orders := sampleOrders()
	totals := AggregateBy(From(orders),
		func(o Order) int64 { return o.CustomerID },
		func() int { return 0 },
		func(acc int, o Order) int { return acc + o.Amount }).ToSlice()

	if len(totals) != 3 {
		t.Fatalf("期望 3 个键，实际得到 %d", len(totals))
	}
	if totals[0].Key != 1 || totals[0].Value != 70 {
		t.Errorf("期望客户 1 合计 70，实际得到 %+v", totals[0])
	}
	if totals[1].Key != 2 || totals[1].Value != 30 {
		t.Errorf("期望客户 2 合计 30，实际得到 %+v", totals[1])
	}
}

// ============================================================================
// Lookup 测试
// ============================================================================

// TestToLookup 测试构建只读分组集合
func TestToLookup(t *testing.T) {
	orders := sampleOrders()
	lookup := ToLookup(From(orders), func(o Order) int64 { return o.CustomerID })

	if lookup.Count() != 3 {
		t.Fatalf("期望 3 个分组，实际得到 %d", lookup.Count())
	}
	if !lookup.Contains(1) || lookup.Contains(5) {
		t.Error("期望包含键 1 且不包含键 5")
	}

	mine := lookup.Get(1).ToSlice()
	if len(mine) != 2 || mine[0].ID != 101 || mine[1].ID != 103 {
		t.Errorf("期望客户 1 的订单 [101 103]，实际得到 %+v", mine)
	}
	if got := lookup.Get(5).Count(); got != 0 {
		t.Errorf("不存在的键期望空查询，实际得到 %d 个元素", got)
	}

	keys := lookup.Keys()
	expectedKeys := []int64{1, 2, 9}
	for i, k := range keys {
		if k != expectedKeys[i] {
			t.Errorf("索引 %d: 期望键 %d，实际得到 %d", i, expectedKeys[i], k)
		}
	}
	if len(lookup.Groups()) != 3 {
		t.Errorf("期望 3 个分组，实际得到 %d", len(lookup.Groups()))
	}
}

// TestToLookupSelect 测试带值选择器的 Lookup
func TestToLookupSelect(t *testing.T) {
	orders := sampleOrders()
	lookup := ToLookupSelect(From(orders),
		func(o Order) int64 { return o.CustomerID },
		func(o Order) int { return o.Amount })

	amounts := lookup.Get(1).ToSlice()
	if len(amounts) != 2 || amounts[0] != 50 || amounts[1] != 20 {
		t.Errorf("期望 [50 20]，实际得到 %v", amounts)
	}
}

// TestLookupVolume 测试较大数据量下的分组完整性
func TestLookupVolume(t *testing.T) {
	total := randomdata.Number(500, 1000)
	nums := Range(0, total)
	lookup := ToLookup(nums, func(i int) int { return i % 7 })

	if lookup.Count() != 7 {
		t.Fatalf("期望 7 个分组，实际得到 %d", lookup.Count())
	}
	sum := 0
	for _, g := range lookup.Groups() {
		sum += len(g.Items)
	}
	if sum != total {
		t.Errorf("期望成员总数 %d，实际得到 %d", total, sum)
	}
}

// ============================================================================
// 关联测试
// ============================================================================

// TestJoin 测试内关联
func TestJoin(t *testing.T) {
	customers := sampleCustomers()
	orders := sampleOrders()

	type row struct {
		City   string
		Amount int
	}
	rows := Join(From(customers), From(orders),
		func(c Customer) int64 { return c.ID },
		func(o Order) int64 { return o.CustomerID },
		func(c Customer, o Order) row { return row{City: c.City, Amount: o.Amount} }).ToSlice()

	// 客户 1 两笔，客户 2 一笔，其余没有匹配
	if len(rows) != 3 {
		t.Fatalf("期望 3 行，实际得到 %d", len(rows))
	}
	if rows[0].Amount != 50 || rows[1].Amount != 20 {
		t.Errorf("期望客户 1 的两笔按源顺序 [50 20]，实际得到 %+v", rows)
	}
	if rows[2].City != "上海" || rows[2].Amount != 30 {
		t.Errorf("期望第三行为上海 30，实际得到 %+v", rows[2])
	}
}

// TestLeftJoin 测试左关联，未匹配的外表元素也产出一行
func TestLeftJoin(t *testing.T) {
	customers := sampleCustomers()
	orders := sampleOrders()

	type row struct {
		CustomerID int64
		OrderID    int64
		Matched    bool
	}
	rows := LeftJoin(From(customers), From(orders),
		func(c Customer) int64 { return c.ID },
		func(o Order) int64 { return o.CustomerID },
		func(c Customer, o Order, ok bool) row {
			return row{CustomerID: c.ID, OrderID: o.ID, Matched: ok}
		}).ToSlice()

	// 客户 1 两行，客户 2 一行，客户 3 和 4 各一行未匹配
	if len(rows) != 5 {
		t.Fatalf("期望 5 行，实际得到 %d", len(rows))
	}
	unmatched := 0
	for _, r := range rows {
		if !r.Matched {
			unmatched++
			if r.OrderID != 0 {
				t.Errorf("未匹配行期望零值订单，实际得到 %d", r.OrderID)
			}
		}
	}
	if unmatched != 2 {
		t.Errorf("期望 2 行未匹配，实际得到 %d", unmatched)
	}
	if rows[0].CustomerID != 1 || rows[4].CustomerID != 4 {
		t.Error("期望结果保持外表顺序")
	}
}

// TestGroupJoin 测试分组关联
func TestGroupJoin(t *testing.T) {
	customers := sampleCustomers()
	orders := sampleOrders()

	type row struct {
		CustomerID int64
		Orders     int
	}
	rows := GroupJoin(From(customers), From(orders),
		func(c Customer) int64 { return c.ID },
		func(o Order) int64 { return o.CustomerID },
		func(c Customer, os []Order) row {
			return row{CustomerID: c.ID, Orders: len(os)}
		}).ToSlice()

	if len(rows) != 4 {
		t.Fatalf("期望每个客户一行共 4 行，实际得到 %d", len(rows))
	}
	expected := []int{2, 1, 0, 0}
	for i, r := range rows {
		if r.Orders != expected[i] {
			t.Errorf("客户 %d: 期望 %d 笔订单，实际得到 %d", r.CustomerID, expected[i], r.Orders)
		}
	}
}
