package stock

import (
	"fmt"
	"strings"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/field"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
)

// ===========================
// Broker Value
// ===========================

// Broker 券商資料
//
// 相等性：比較 brokerID、brokerCode
type Broker struct {
	brokerID   string
	brokerCode string
	brokerName string
}

// NewBroker 建立券商
//
// brokerID 為空時自動生成 12 字元 ID
func NewBroker(brokerID, brokerCode, brokerName string) (*Broker, error) {
	b := &Broker{}
	if err := b.SetBrokerID(brokerID); err != nil {
		return nil, err
	}
	if err := b.SetBrokerCode(brokerCode); err != nil {
		return nil, err
	}
	if err := b.SetBrokerName(brokerName); err != nil {
		return nil, err
	}
	return b, nil
}

// SetBrokerID 設定券商 ID（空白時自動生成）
func (b *Broker) SetBrokerID(value string) error {
	if strings.TrimSpace(value) == "" {
		b.brokerID = shared.GenerateID(shared.DefaultIDSize)
		return nil
	}
	v, err := field.ID("broker_id", value)
	if err != nil {
		return err
	}
	b.brokerID = v
	return nil
}

// SetBrokerCode 設定券商代碼
func (b *Broker) SetBrokerCode(value string) error {
	v, err := field.String("broker_code", value)
	if err != nil {
		return err
	}
	b.brokerCode = v
	return nil
}

// SetBrokerName 設定券商名稱
func (b *Broker) SetBrokerName(value string) error {
	v, err := field.String("broker_name", value)
	if err != nil {
		return err
	}
	b.brokerName = v
	return nil
}

func (b *Broker) BrokerID() string   { return b.brokerID }
func (b *Broker) BrokerCode() string { return b.brokerCode }
func (b *Broker) BrokerName() string { return b.brokerName }

// Equals 自然鍵相等比較
func (b *Broker) Equals(other *Broker) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.brokerID == other.brokerID && b.brokerCode == other.brokerCode
}

func (b *Broker) String() string {
	return fmt.Sprintf("<Broker broker_code: %s>", b.brokerCode)
}
