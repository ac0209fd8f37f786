package idgen

import (
	"sync"
	"time"
)

// InvoiceIDGenerator 简化的雪花ID生成器
// ID格式: 时间戳(10位) + 机器ID(2位) + 序列号(3位) = 15位数字
// 重复计算同一账期会生成互不相同的发票ID，为分库分表预留扩展空间
type InvoiceIDGenerator struct {
	mu        sync.Mutex
	epoch     int64 // 起始时间戳 (2025-01-01 00:00:00 UTC)
	machineID int64 // 机器ID (0-99)
	sequence  int64 // 序列号 (0-999)
	lastTime  int64 // 上次生成ID的时间戳
}

const (
	maxMachineID = 99  // 最大机器ID，支持100个实例
	maxSequence  = 999 // 最大序列号，每秒支持1000个ID
)

// NewInvoiceIDGenerator 创建ID生成器
// machineID: 机器ID，范围 0-99，越界时回落为 0
func NewInvoiceIDGenerator(machineID int64) *InvoiceIDGenerator {
	if machineID < 0 || machineID > maxMachineID {
		machineID = 0
	}

	return &InvoiceIDGenerator{
		epoch:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		machineID: machineID,
	}
}

// NextID 生成下一个ID
func (g *InvoiceIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().Unix()

	if now == g.lastTime {
		// 同一秒内，序列号递增
		g.sequence = (g.sequence + 1) % (maxSequence + 1)
		if g.sequence == 0 {
			// 序列号用尽，等待下一秒
			for now <= g.lastTime {
				now = time.Now().Unix()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	// 组合ID: (now-epoch) * 100000 + 机器ID * 1000 + 序列号
	return (now-g.epoch)*100000 + g.machineID*1000 + g.sequence
}

// 全局默认ID生成器（机器ID为1）
var defaultGenerator = NewInvoiceIDGenerator(1)

// GenerateID 生成ID（使用默认生成器）
func GenerateID() int64 {
	return defaultGenerator.NextID()
}
