package pipeline

import (
	"testing"
)

func TestNewOptimizeCommand_DefaultLevel(t *testing.T) {
	command, err := NewOptimizeCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	optimizeCmd, ok := command.(*OptimizeCommand)
	if !ok {
		t.Fatal("Expected command to be *OptimizeCommand")
	}
	if optimizeCmd.GetLevel() != "best" {
		t.Errorf("Expected default level 'best', got '%s'", optimizeCmd.GetLevel())
	}
}

func TestNewOptimizeCommand_UnknownLevel(t *testing.T) {
	_, err := NewOptimizeCommand(map[string]any{"level": "maximum"})
	if err == nil {
		t.Error("Expected error for unknown compression level")
	}
}

func TestOptimizeCommand_Execute_PreservesDimensions(t *testing.T) {
	for _, level := range []string{"best", "default", "speed"} {
		t.Run(level, func(t *testing.T) {
			command, err := NewOptimizeCommand(map[string]any{"level": level})
			if err != nil {
				t.Fatalf("Failed to create command: %v", err)
			}

			input := makeTestPNG(t, 40, 30)
			output, err := command.Execute(input)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}

			width, height := decodeDimensions(t, output)
			if width != 40 || height != 30 {
				t.Errorf("Expected 40x30, got %dx%d", width, height)
			}
		})
	}
}

func TestOptimizeCommand_Execute_InvalidInput(t *testing.T) {
	command, err := NewOptimizeCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}

	_, err = command.Execute([]byte{0x00, 0x01, 0x02})
	if err == nil {
		t.Error("Expected error for non-PNG input")
	}
}

func TestOptimizeCommand_Name(t *testing.T) {
	command, err := NewOptimizeCommand(map[string]any{})
	if err != nil {
		t.Fatalf("Failed to create command: %v", err)
	}
	if command.Name() != "OptimizeCommand" {
		t.Errorf("Expected name 'OptimizeCommand', got '%s'", command.Name())
	}
}
